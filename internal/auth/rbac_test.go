package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tuanngo/material-management/internal/auth"
)

var _ = Describe("Role", func() {
	Describe("ParseRole", func() {
		It("accepts the three known roles", func() {
			for _, value := range []string{"admin", "superuser", "user"} {
				role, err := auth.ParseRole(value)
				Expect(err).ToNot(HaveOccurred())
				Expect(role.String()).To(Equal(value))
			}
		})

		It("rejects anything outside the enum", func() {
			for _, value := range []string{"", "Admin", "root", "moderator", "ADMIN "} {
				_, err := auth.ParseRole(value)
				Expect(err).To(HaveOccurred(), "expected %q to be rejected", value)
			}
		})
	})

	Describe("CanUploadMaterial", func() {
		It("allows admins and superusers only", func() {
			Expect(auth.RoleAdmin.CanUploadMaterial()).To(BeTrue())
			Expect(auth.RoleSuperuser.CanUploadMaterial()).To(BeTrue())
			Expect(auth.RoleUser.CanUploadMaterial()).To(BeFalse())
		})
	})

	Describe("CanModifyMaterial", func() {
		It("lets admins modify any material", func() {
			Expect(auth.RoleAdmin.CanModifyMaterial(7, 99)).To(BeTrue())
			Expect(auth.RoleAdmin.CanModifyMaterial(99, 99)).To(BeTrue())
		})

		It("restricts superusers to their own uploads", func() {
			Expect(auth.RoleSuperuser.CanModifyMaterial(42, 42)).To(BeTrue())
			Expect(auth.RoleSuperuser.CanModifyMaterial(42, 7)).To(BeFalse())
		})

		It("never lets plain users modify materials, even their own", func() {
			Expect(auth.RoleUser.CanModifyMaterial(13, 13)).To(BeFalse())
			Expect(auth.RoleUser.CanModifyMaterial(13, 14)).To(BeFalse())
		})
	})
})
