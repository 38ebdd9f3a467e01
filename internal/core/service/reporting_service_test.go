package service

import (
	"context"
	"errors"
	"testing"

	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/core/domain"
)

type stubPropertyFetcher struct {
	props []domain.Property
	err   error
}

func (f *stubPropertyFetcher) List(_ context.Context, _ domain.PropertyFilter) ([]domain.Property, error) {
	return f.props, f.err
}

type stubInquiryFetcher struct {
	inquiries []domain.Inquiry
	err       error
}

func (f *stubInquiryFetcher) List(_ context.Context, _ string) ([]domain.Inquiry, error) {
	return f.inquiries, f.err
}

func TestReportingService_PropertiesReport(t *testing.T) {
	fetcher := &stubPropertyFetcher{props: []domain.Property{
		{City: "Riga", PropertyType: domain.TypeApartment, PriceEUR: 100000, IsForSale: true},
		{City: "Riga", PropertyType: domain.TypeHouse, PriceEUR: 250000, IsForSale: true, IsForRent: true},
		{City: "Jurmala", PropertyType: domain.TypeApartment, PriceEUR: 130000, IsForRent: true},
	}}
	svc := NewReportingService(fetcher, &stubInquiryFetcher{})

	report, err := svc.PropertiesReport(context.Background())
	if err != nil {
		t.Fatalf("properties report: %v", err)
	}
	if report.Total != 3 {
		t.Fatalf("expected total 3, got %d", report.Total)
	}
	if report.ByType["apartment"] != 2 || report.ByType["house"] != 1 {
		t.Fatalf("unexpected by_type: %v", report.ByType)
	}
	if report.ByCity["Riga"] != 2 {
		t.Fatalf("unexpected by_city: %v", report.ByCity)
	}
	if report.ForSale != 2 || report.ForRent != 2 {
		t.Fatalf("unexpected sale/rent split: %d/%d", report.ForSale, report.ForRent)
	}
	if report.AveragePriceEUR != 160000 {
		t.Fatalf("unexpected average price: %v", report.AveragePriceEUR)
	}
}

func TestReportingService_PeerErrorPropagates(t *testing.T) {
	peerErr := &client.PeerError{Peer: "property-service", Op: "GET /properties"}
	svc := NewReportingService(&stubPropertyFetcher{err: peerErr}, &stubInquiryFetcher{err: peerErr})

	var pe *client.PeerError
	if _, err := svc.PropertiesReport(context.Background()); !errors.As(err, &pe) {
		t.Fatalf("expected *PeerError, got %v", err)
	}
	if _, err := svc.InquiriesReport(context.Background(), "tok"); !errors.As(err, &pe) {
		t.Fatalf("expected *PeerError, got %v", err)
	}
}

func TestReportingService_InquiriesReport(t *testing.T) {
	fetcher := &stubInquiryFetcher{inquiries: []domain.Inquiry{
		{Status: domain.InquiryNew},
		{Status: domain.InquiryNew},
		{Status: domain.InquiryDone},
	}}
	svc := NewReportingService(&stubPropertyFetcher{}, fetcher)

	report, err := svc.InquiriesReport(context.Background(), "tok")
	if err != nil {
		t.Fatalf("inquiries report: %v", err)
	}
	if report.Total != 3 || report.ByStatus["new"] != 2 || report.ByStatus["done"] != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
