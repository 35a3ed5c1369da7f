package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an admin account and the department list",
	Long:  `Seed the database with the default admin account and the standard departments for development and first deployment.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if seedClearData {
			for _, table := range []string{"materials", "users", "departments"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		var exists int
		err = db.QueryRow("SELECT 1 FROM users WHERE username = $1", "admin").Scan(&exists)
		if err == nil {
			fmt.Println("admin user already exists")
		} else {
			_, err = db.Exec(
				"INSERT INTO users (username, email, full_name, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5, now())",
				"admin", "admin@example.com", "Quản trị viên", string(hash), "admin")
			if err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user: admin")
		}

		departments := []struct {
			Code string
			Name string
		}{
			{"CNTT", "Công nghệ thông tin"},
			{"TOAN", "Toán"},
			{"LY", "Vật lý"},
			{"HOA", "Hóa học"},
			{"ANH", "Tiếng Anh"},
		}
		for _, d := range departments {
			err = db.QueryRow("SELECT 1 FROM departments WHERE code = $1", d.Code).Scan(&exists)
			if err == nil {
				continue
			}
			_, err = db.Exec("INSERT INTO departments (code, name) VALUES ($1, $2)", d.Code, d.Name)
			if err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Code, err)
			}
			fmt.Println("Seeded department:", d.Code)
		}
	},
}
