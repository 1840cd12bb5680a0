package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/printer"
	"github.com/sangkips/fuelinvoice-api/pkg/utils"
)

// SlipService prints pump slips for daily invoices on a thermal printer
type SlipService struct {
	dailyRepo   repository.DailyInvoiceRepository
	profileRepo repository.BusinessProfileRepository
	printer     printer.Printer
	width       int
	log         zerolog.Logger
}

// NewSlipService creates a new slip service. width is the paper width in
// characters.
func NewSlipService(
	dailyRepo repository.DailyInvoiceRepository,
	profileRepo repository.BusinessProfileRepository,
	p printer.Printer,
	width int,
	log zerolog.Logger,
) *SlipService {
	return &SlipService{
		dailyRepo:   dailyRepo,
		profileRepo: profileRepo,
		printer:     p,
		width:       width,
		log:         log,
	}
}

// Slip composes the pump slip of a daily invoice
func (s *SlipService) Slip(ctx context.Context, id uuid.UUID) (*entity.FuelSlip, error) {
	invoice, err := s.dailyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.BusinessProfile{}
	}

	slip := &entity.FuelSlip{
		StationName:   profile.CompanyName,
		Address:       profile.CompanyAddress,
		Contact:       profile.CompanyContact,
		VatNo:         profile.CompanyVatNo,
		SerialNo:      invoice.SerialNo,
		Date:          invoice.DateAdded.Format(utils.DateLayout),
		VehicleNo:     invoice.VehicleNo(),
		Volume:        invoice.Volume,
		UnitPrice:     invoice.FuelNetPrice,
		SubTotal:      invoice.SubTotal,
		VatPercentage: invoice.VatPercentage,
		VatAmount:     invoice.VatAmount,
		Total:         invoice.Total,
	}
	if invoice.Vehicle != nil && invoice.Vehicle.Company != nil {
		slip.Company = invoice.Vehicle.Company.Name
	}
	if invoice.FuelType != nil {
		slip.FuelType = invoice.FuelType.Name
	}
	return slip, nil
}

// Render lays a slip out as ESC/POS bytes
func (s *SlipService) Render(slip *entity.FuelSlip) []byte {
	doc := printer.NewDocument(s.width)

	doc.Align(printer.AlignCenter).
		Bold(true).FontSize(printer.FontTall).
		Text(slip.StationName).
		FontSize(printer.FontNormal).Bold(false).
		Text(slip.Address).
		Text(slip.Contact)
	if slip.VatNo != "" {
		doc.Text("VAT No: " + slip.VatNo)
	}

	doc.Align(printer.AlignLeft).
		Separator('-').
		KeyValue("Serial No", slip.SerialNo).
		KeyValue("Date", slip.Date).
		KeyValue("Vehicle", slip.VehicleNo)
	if slip.Company != "" {
		doc.KeyValue("Company", slip.Company)
	}

	doc.Separator('-').
		KeyValue(slip.FuelType, slip.Volume.StringFixed(3)+" L").
		KeyValue("Unit price", slip.UnitPrice.StringFixed(2)).
		KeyValue("Subtotal", slip.SubTotal.StringFixed(2)).
		KeyValue("VAT "+slip.VatPercentage.String()+"%", slip.VatAmount.StringFixed(2)).
		Separator('=').
		Bold(true).
		KeyValue("TOTAL", slip.Total.StringFixed(2)).
		Bold(false).
		Feed(3).
		Cut()

	return doc.Bytes()
}

// Print sends a daily invoice's slip to the printer
func (s *SlipService) Print(ctx context.Context, id uuid.UUID) (*entity.FuelSlip, error) {
	slip, err := s.Slip(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, s.Render(slip)); err != nil {
		s.log.Error().Err(err).Str("invoice_id", id.String()).Msg("slip printing failed")
		return nil, apperror.Wrap(http.StatusServiceUnavailable, "Printer is not available", err)
	}

	s.log.Info().Str("invoice_id", id.String()).Str("serial_no", slip.SerialNo).Msg("slip printed")
	return slip, nil
}

// PrinterAvailable reports whether the configured printer can be reached
func (s *SlipService) PrinterAvailable(ctx context.Context) bool {
	return s.printer.Available(ctx)
}
