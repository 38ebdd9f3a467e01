package service

import (
	"context"
	"math"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// PropertyFetcher lists the full portfolio from the property peer.
type PropertyFetcher interface {
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
}

// InquiryFetcher lists inquiries from the inquiry peer, forwarding the
// caller's bearer token so the peer applies its own scoping.
type InquiryFetcher interface {
	List(ctx context.Context, bearer string) ([]domain.Inquiry, error)
}

// ReportingService builds agent reports out of peer-service data. Peer
// failures propagate as *PeerError; there is nothing useful to report
// without the underlying rows.
type ReportingService struct {
	properties PropertyFetcher
	inquiries  InquiryFetcher
}

func NewReportingService(properties PropertyFetcher, inquiries InquiryFetcher) *ReportingService {
	return &ReportingService{properties: properties, inquiries: inquiries}
}

func (s *ReportingService) PropertiesReport(ctx context.Context) (*ports.PropertyReport, error) {
	props, err := s.properties.List(ctx, domain.PropertyFilter{})
	if err != nil {
		return nil, err
	}

	report := &ports.PropertyReport{
		Total:      len(props),
		ByType:     make(map[string]int),
		ByCity:     make(map[string]int),
		Properties: props,
	}

	var priceSum float64
	for _, p := range props {
		report.ByType[string(p.PropertyType)]++
		report.ByCity[p.City]++
		if p.IsForSale {
			report.ForSale++
		}
		if p.IsForRent {
			report.ForRent++
		}
		priceSum += p.PriceEUR
	}
	if report.Total > 0 {
		report.AveragePriceEUR = math.Round(priceSum/float64(report.Total)*100) / 100
	}
	return report, nil
}

func (s *ReportingService) InquiriesReport(ctx context.Context, bearer string) (*ports.InquiryReport, error) {
	inquiries, err := s.inquiries.List(ctx, bearer)
	if err != nil {
		return nil, err
	}

	report := &ports.InquiryReport{
		Total:     len(inquiries),
		ByStatus:  make(map[string]int),
		Inquiries: inquiries,
	}
	for _, i := range inquiries {
		report.ByStatus[string(i.Status)]++
	}
	return report, nil
}
