package department

type Department struct {
	ID          int64   `gorm:"primaryKey"`
	Code        string  `gorm:"column:code;uniqueIndex;not null"`
	Name        string  `gorm:"column:name;not null"`
	Description *string `gorm:"column:description"`
}

func (Department) TableName() string {
	return "departments"
}
