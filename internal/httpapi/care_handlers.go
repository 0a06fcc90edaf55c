// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"net/http"
	"slices"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// Elders.

func (s *Server) listElders(c fiber.Ctx) error {
	elders, err := s.care.ListElders(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, elders)
}

func (s *Server) getElder(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	e, err := s.care.GetElder(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, e)
}

func (s *Server) createElder(c fiber.Ctx) error {
	var e care.Elder
	if err := decode(c, &e); err != nil {
		return err
	}
	if err := s.care.CreateElder(c.Context(), actor(c), &e); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &e)
}

func (s *Server) updateElder(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	e, err := s.care.UpdateElder(c.Context(), actor(c), id, func(e *care.Elder) error {
		return decode(c, e)
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, e)
}

func (s *Server) deleteElder(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteElder(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Caregivers.

func (s *Server) listCaregivers(c fiber.Ctx) error {
	caregivers, err := s.care.ListCaregivers(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, caregivers)
}

func (s *Server) getCaregiver(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cg, err := s.care.GetCaregiver(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, cg)
}

func (s *Server) createCaregiver(c fiber.Ctx) error {
	var cg care.Caregiver
	if err := decode(c, &cg); err != nil {
		return err
	}
	if err := s.care.CreateCaregiver(c.Context(), actor(c), &cg); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &cg)
}

func (s *Server) updateCaregiver(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cg, err := s.care.UpdateCaregiver(c.Context(), actor(c), id, func(cg *care.Caregiver) error {
		return decode(c, cg)
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, cg)
}

func (s *Server) deleteCaregiver(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteCaregiver(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Staff.

func (s *Server) listStaff(c fiber.Ctx) error {
	staff, err := s.care.ListStaff(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, staff)
}

func (s *Server) getStaff(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	st, err := s.care.GetStaff(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, st)
}

func (s *Server) createStaff(c fiber.Ctx) error {
	var st care.Staff
	if err := decode(c, &st); err != nil {
		return err
	}
	if err := s.care.CreateStaff(c.Context(), actor(c), &st); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &st)
}

func (s *Server) updateStaff(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	st, err := s.care.UpdateStaff(c.Context(), actor(c), id, func(st *care.Staff) error {
		return decode(c, st)
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, st)
}

func (s *Server) deleteStaff(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteStaff(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Services.

func (s *Server) listOfferings(c fiber.Ctx) error {
	offerings, err := s.care.ListOfferings(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, offerings)
}

func (s *Server) getOffering(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	o, err := s.care.GetOffering(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, o)
}

func (s *Server) createOffering(c fiber.Ctx) error {
	var o care.Offering
	if err := decode(c, &o); err != nil {
		return err
	}
	if err := s.care.CreateOffering(c.Context(), actor(c), &o); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &o)
}

func (s *Server) updateOffering(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	o, err := s.care.UpdateOffering(c.Context(), actor(c), id, func(o *care.Offering) error {
		return decode(c, o)
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, o)
}

func (s *Server) deleteOffering(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteOffering(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Bookings.

func (s *Server) listBookings(c fiber.Ctx) error {
	bookings, err := s.care.ListBookings(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, bookings)
}

func (s *Server) getBooking(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := s.care.GetBooking(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

func (s *Server) createBooking(c fiber.Ctx) error {
	var b care.Booking
	if err := decode(c, &b); err != nil {
		return err
	}
	if err := s.care.CreateBooking(c.Context(), actor(c), &b); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &b)
}

func (s *Server) updateBooking(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := s.care.UpdateBooking(c.Context(), actor(c), id, func(b *care.Booking) error {
		return decode(c, b)
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

func (s *Server) deleteBooking(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteBooking(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Invoices.

// invoiceFilter reads ?status=&from=&to= with dates as 2006-01-02.
func invoiceFilter(c fiber.Ctx) (care.InvoiceFilter, error) {
	var filter care.InvoiceFilter
	if raw := c.Query("status"); raw != "" {
		status := care.InvoiceStatus(raw)
		if !slices.Contains(care.InvoiceStatuses, status) {
			return filter, oops.Code("INVOICE_FILTER_INVALID").
				With("status", raw).
				Wrap(errutil.Invalid("status", "Invalid invoice status"))
		}
		filter.Status = &status
	}
	for _, bound := range []struct {
		param string
		dst   **time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		raw := c.Query(bound.param)
		if raw == "" {
			continue
		}
		d, err := care.ParseDate(raw)
		if err != nil {
			return filter, oops.Code("INVOICE_FILTER_INVALID").
				With(bound.param, raw).
				Wrap(errutil.Invalid(bound.param, "Dates must look like 2006-01-02"))
		}
		t := d.Time
		*bound.dst = &t
	}
	return filter, nil
}

func (s *Server) listInvoices(c fiber.Ctx) error {
	filter, err := invoiceFilter(c)
	if err != nil {
		return err
	}
	invoices, err := s.care.ListInvoices(c.Context(), actor(c), filter)
	if err != nil {
		return err
	}
	return respondList(c, invoices)
}

func (s *Server) getInvoice(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	inv, err := s.care.GetInvoice(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, inv)
}

func (s *Server) createInvoice(c fiber.Ctx) error {
	var inv care.Invoice
	if err := decode(c, &inv); err != nil {
		return err
	}
	if err := s.care.CreateInvoice(c.Context(), actor(c), &inv); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &inv)
}

type statusRequest struct {
	Status care.InvoiceStatus `json:"status"`
}

func (s *Server) updateInvoiceStatus(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in statusRequest
	if err := decode(c, &in); err != nil {
		return err
	}
	inv, err := s.care.UpdateInvoiceStatus(c.Context(), actor(c), id, in.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, inv)
}

func (s *Server) deleteInvoice(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteInvoice(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Payments.

func (s *Server) listPayments(c fiber.Ctx) error {
	payments, err := s.care.ListPayments(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, payments)
}

func (s *Server) getPayment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := s.care.GetPayment(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, p)
}

func (s *Server) createPayment(c fiber.Ctx) error {
	var p care.Payment
	if err := decode(c, &p); err != nil {
		return err
	}
	if err := s.care.CreatePayment(c.Context(), actor(c), &p); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &p)
}

func (s *Server) updatePayment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := s.care.UpdatePayment(c.Context(), actor(c), id, func(p *care.Payment) error {
		return decode(c, p)
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, p)
}

func (s *Server) deletePayment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeletePayment(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Documents.

func (s *Server) listDocuments(c fiber.Ctx) error {
	docs, err := s.care.ListDocuments(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, docs)
}

func (s *Server) getDocument(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	link, err := s.care.GetDocument(c.Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, link)
}

// createDocument registers the metadata and hands back a presigned URL the
// client uploads the bytes to.
func (s *Server) createDocument(c fiber.Ctx) error {
	var in care.DocumentInput
	if err := decode(c, &in); err != nil {
		return err
	}
	link, err := s.care.CreateDocument(c.Context(), actor(c), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, link)
}

func (s *Server) updateDocument(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch care.DocumentPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	doc, err := s.care.UpdateDocument(c.Context(), actor(c), id, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, doc)
}

func (s *Server) deleteDocument(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.DeleteDocument(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}

// Contact.

func (s *Server) submitContact(c fiber.Ctx) error {
	var msg care.ContactMessage
	if err := decode(c, &msg); err != nil {
		return err
	}
	if err := s.care.SubmitContact(c.Context(), &msg); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, &msg)
}

func (s *Server) listContacts(c fiber.Ctx) error {
	msgs, err := s.care.ListContacts(c.Context(), actor(c))
	if err != nil {
		return err
	}
	return respondList(c, msgs)
}

// Family members.

func (s *Server) addFamilyMember(c fiber.Ctx) error {
	var in care.FamilyMemberInput
	if err := decode(c, &in); err != nil {
		return err
	}
	fm, err := s.care.AddFamilyMember(c.Context(), actor(c), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, fm)
}

func (s *Server) listFamilyMembers(c fiber.Ctx) error {
	elderID, err := pathID(c, "elderId")
	if err != nil {
		return err
	}
	members, err := s.care.ListFamilyMembers(c.Context(), actor(c), elderID)
	if err != nil {
		return err
	}
	return respondList(c, members)
}

func (s *Server) updateFamilyMember(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch care.FamilyMemberPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	fm, err := s.care.UpdateFamilyMember(c.Context(), actor(c), id, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fm)
}

func (s *Server) removeFamilyMember(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.care.RemoveFamilyMember(c.Context(), actor(c), id); err != nil {
		return err
	}
	return respondDeleted(c)
}
