// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/carehaven/carehaven/internal/notify"
)

var resetLinkPattern = regexp.MustCompile(`http://app\.test/reset-password/(\S+)`)

// uniqueEmail keeps specs independent on the shared database.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, strings.ToLower(ulid.Make().String()))
}

var _ = Describe("Authentication", func() {
	It("registers, signs in and resolves the current account", func() {
		email := uniqueEmail("jane")
		token, id := register(email, "")

		me := call(http.MethodGet, "/api/auth/me", token, nil)
		Expect(me.Status).To(Equal(http.StatusOK))
		Expect(me.Data()["id"]).To(Equal(id))
		Expect(me.Data()["role"]).To(Equal("User"))
		Expect(me.Data()).NotTo(HaveKey("passwordHash"))

		login := call(http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": "secret123"})
		Expect(login.Status).To(Equal(http.StatusOK))
		Expect(login.Body["token"]).NotTo(BeEmpty())
	})

	It("rejects duplicate emails and wrong passwords", func() {
		email := uniqueEmail("dup")
		register(email, "")

		dup := call(http.MethodPost, "/api/auth/register", "", map[string]any{
			"firstName": "Again", "lastName": "User", "email": email, "password": "secret123",
		})
		Expect(dup.Status).To(Equal(http.StatusConflict))

		wrong := call(http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": "nope-nope"})
		Expect(wrong.Status).To(Equal(http.StatusUnauthorized))
		Expect(wrong.Body["error"]).To(Equal("Invalid credentials"))
	})

	It("resets a forgotten password through the emailed link", func() {
		email := uniqueEmail("forgetful")
		register(email, "")

		resp := call(http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": email})
		Expect(resp.Status).To(Equal(http.StatusOK))

		messages := env.mail.To(email)
		Expect(messages).To(HaveLen(1))
		match := resetLinkPattern.FindStringSubmatch(messages[0].Text)
		Expect(match).To(HaveLen(2), "no reset link in %q", messages[0].Text)

		reset := call(http.MethodPut, "/api/auth/reset-password/"+match[1], "", map[string]any{"password": "brand-new-1"})
		Expect(reset.Status).To(Equal(http.StatusOK), "reset: %v", reset.Body)
		Expect(reset.Body["token"]).NotTo(BeEmpty())

		again := call(http.MethodPut, "/api/auth/reset-password/"+match[1], "", map[string]any{"password": "brand-new-2"})
		Expect(again.Status).To(Equal(http.StatusBadRequest), "reset tokens are single use")

		old := call(http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": "secret123"})
		Expect(old.Status).To(Equal(http.StatusUnauthorized))
		fresh := call(http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": "brand-new-1"})
		Expect(fresh.Status).To(Equal(http.StatusOK))
	})
})

var _ = Describe("Elders and family members", func() {
	var (
		ownerToken, strangerToken, adminToken string
		strangerID                            string
		elderID                               string
	)

	BeforeEach(func() {
		ownerToken, _ = register(uniqueEmail("owner"), "")
		strangerToken, strangerID = register(uniqueEmail("stranger"), "")
		adminToken = signInAdmin(uniqueEmail("admin"))

		created := call(http.MethodPost, "/api/elders", ownerToken, map[string]any{
			"fullName":    "Grace Hopper",
			"dateOfBirth": "1936-12-09",
			"gender":      "female",
			"allergies":   []string{"penicillin"},
		})
		Expect(created.Status).To(Equal(http.StatusCreated), "create elder: %v", created.Body)
		elderID = created.Data()["id"].(string)
	})

	It("scopes elders to their owner", func() {
		mine := call(http.MethodGet, "/api/elders", ownerToken, nil)
		Expect(mine.Status).To(Equal(http.StatusOK))
		Expect(mine.List()).To(ContainElement(HaveKeyWithValue("id", elderID)))

		theirs := call(http.MethodGet, "/api/elders", strangerToken, nil)
		Expect(theirs.List()).NotTo(ContainElement(HaveKeyWithValue("id", elderID)))

		forbidden := call(http.MethodGet, "/api/elders/"+elderID, strangerToken, nil)
		Expect(forbidden.Status).To(Equal(http.StatusForbidden))

		all := call(http.MethodGet, "/api/elders", adminToken, nil)
		Expect(all.List()).To(ContainElement(HaveKeyWithValue("id", elderID)))
	})

	It("applies partial updates without touching the owner", func() {
		updated := call(http.MethodPut, "/api/elders/"+elderID, ownerToken, map[string]any{
			"bloodGroup": "O+",
			"userId":     strangerID,
		})
		Expect(updated.Status).To(Equal(http.StatusOK), "update: %v", updated.Body)
		Expect(updated.Data()["bloodGroup"]).To(Equal("O+"))
		Expect(updated.Data()["fullName"]).To(Equal("Grace Hopper"))
		Expect(updated.Data()["userId"]).NotTo(Equal(strangerID))
	})

	It("links a family member that can then read the elder's family", func() {
		link := call(http.MethodPost, "/api/family-members", ownerToken, map[string]any{
			"userId":         strangerID,
			"elderId":        elderID,
			"relationship":   "child",
			"canViewMedical": true,
		})
		Expect(link.Status).To(Equal(http.StatusCreated), "link: %v", link.Body)

		dup := call(http.MethodPost, "/api/family-members", ownerToken, map[string]any{
			"userId":       strangerID,
			"elderId":      elderID,
			"relationship": "child",
		})
		Expect(dup.Status).To(Equal(http.StatusConflict))

		family := call(http.MethodGet, "/api/elders/"+elderID+"/family-members", ownerToken, nil)
		Expect(family.Status).To(Equal(http.StatusOK))
		Expect(family.List()).To(HaveLen(1))
	})

	It("deletes an elder for its owner", func() {
		Expect(call(http.MethodDelete, "/api/elders/"+elderID, ownerToken, nil).Status).To(Equal(http.StatusOK))
		Expect(call(http.MethodGet, "/api/elders/"+elderID, ownerToken, nil).Status).To(Equal(http.StatusNotFound))
	})
})

var _ = Describe("Services, bookings and invoices", func() {
	It("runs a booking through invoicing and payment status", func() {
		adminToken := signInAdmin(uniqueEmail("billing-admin"))
		userToken, userID := register(uniqueEmail("client"), "")

		serviceName := "Home visit " + ulid.Make().String()
		offering := call(http.MethodPost, "/api/services", adminToken, map[string]any{
			"name":        serviceName,
			"description": "A nurse visits at home",
			"category":    "medical",
			"duration":    60,
			"price":       4500,
		})
		Expect(offering.Status).To(Equal(http.StatusCreated), "service: %v", offering.Body)

		denied := call(http.MethodPost, "/api/services", userToken, map[string]any{"name": "nope"})
		Expect(denied.Status).To(Equal(http.StatusForbidden))

		booking := call(http.MethodPost, "/api/bookings", userToken, map[string]any{
			"name":    "Client Contact",
			"phone":   "+15550100",
			"service": serviceName,
			"date":    "2026-11-02",
		})
		Expect(booking.Status).To(Equal(http.StatusCreated), "booking: %v", booking.Body)
		Expect(booking.Data()["status"]).To(Equal("pending"))
		bookingID := booking.Data()["id"].(string)

		invoice := call(http.MethodPost, "/api/invoices", userToken, map[string]any{
			"bookingId": bookingID,
			"status":    "paid",
			"items": []map[string]any{
				{"description": "Home visit", "quantity": 2, "unitPrice": 4500},
			},
			"tax": 900,
		})
		Expect(invoice.Status).To(Equal(http.StatusCreated), "invoice: %v", invoice.Body)
		data := invoice.Data()
		Expect(data["status"]).To(Equal("draft"), "only admins pick the initial status")
		Expect(data["total"]).To(BeNumerically("==", 9900))
		Expect(data["invoiceNumber"]).To(MatchRegexp(`^INV-\d{6}-\d{4}$`))
		invoiceID := data["id"].(string)

		Expect(call(http.MethodPatch, "/api/invoices/"+invoiceID+"/status", userToken,
			map[string]any{"status": "paid"}).Status).To(Equal(http.StatusForbidden))

		paid := call(http.MethodPatch, "/api/invoices/"+invoiceID+"/status", adminToken, map[string]any{"status": "paid"})
		Expect(paid.Status).To(Equal(http.StatusOK), "status: %v", paid.Body)
		Expect(paid.Data()["paidAt"]).NotTo(BeNil())

		filtered := call(http.MethodGet, "/api/invoices?status=paid", userToken, nil)
		Expect(filtered.Status).To(Equal(http.StatusOK))
		Expect(filtered.List()).To(ConsistOf(HaveKeyWithValue("id", invoiceID)))

		mine := call(http.MethodGet, "/api/bookings", userToken, nil)
		Expect(mine.List()).To(ConsistOf(HaveKeyWithValue("userId", userID)))
	})
})

var _ = Describe("Contact form", func() {
	It("stores public messages and notifies the office", func() {
		subject := "Question " + ulid.Make().String()
		resp := call(http.MethodPost, "/api/contact", "", map[string]any{
			"name":    "Curious Visitor",
			"email":   "visitor@example.com",
			"subject": subject,
			"message": "Do you cover weekends?",
		})
		Expect(resp.Status).To(Equal(http.StatusCreated), "contact: %v", resp.Body)

		Expect(env.mail.To(adminInbox)).To(ContainElement(
			WithTransform(func(m notify.Message) string { return m.Subject }, ContainSubstring(subject)),
		))

		adminToken := signInAdmin(uniqueEmail("office"))
		list := call(http.MethodGet, "/api/contact", adminToken, nil)
		Expect(list.Status).To(Equal(http.StatusOK))
		Expect(list.List()).To(ContainElement(HaveKeyWithValue("subject", subject)))
	})
})
