package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"nexbe-contract/internal/models"
	"nexbe-contract/internal/pricing"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrRenderInvalidData is returned when the contract record is not
// complete enough to render. No partial document is ever produced.
var ErrRenderInvalidData = errors.New("contract data incomplete for rendering")

// PDFService renders a frozen contract record, together with its legal
// attachment sections, into a single PDF document.
type PDFService struct {
	logger *zap.Logger
}

func NewPDFService(logger *zap.Logger) *PDFService {
	return &PDFService{logger: logger}
}

// DocumentFilename derives the download filename from a contract number,
// e.g. "Umowa_MSAN_001_02_2026.pdf".
func DocumentFilename(contractNumber string) string {
	return "Umowa_" + strings.ReplaceAll(contractNumber, "/", "_") + ".pdf"
}

// RenderContract produces the combined document: the contract itself,
// the RODO information clause and the requested powers of attorney.
func (s *PDFService) RenderContract(data *models.ContractData) ([]byte, error) {
	if data.ContractNumber == "" || data.Client.FullName == "" {
		return nil, ErrRenderInvalidData
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	s.renderContractBody(pdf, tr, data)
	s.renderRODOSection(pdf, tr, data)
	if data.Attachments.PoaOSD {
		s.renderPOAOSDSection(pdf, tr, data)
	}
	if data.Attachments.PoaSubsidy {
		s.renderPOASubsidySection(pdf, tr, data)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render contract %s: %w", data.ContractNumber, err)
	}

	s.logger.Info("Contract document rendered",
		zap.String("contract_number", data.ContractNumber),
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (s *PDFService) renderContractBody(pdf *fpdf.Fpdf, tr func(string) string, data *models.ContractData) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("UMOWA NR "+data.ContractNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("na rozbudowę instalacji fotowoltaicznej o magazyn energii"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	date := data.ContractDate
	if t, err := time.Parse("2006-01-02", data.ContractDate); err == nil {
		date = pricing.FormatDatePolish(t)
	}
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("zawarta w dniu %s w %s pomiędzy:", date, data.ContractCity)), "", "L", false)
	pdf.Ln(2)

	s.renderParty(pdf, tr, "Zamawiający:", &data.Client)
	if data.CoOwner != nil {
		s.renderParty(pdf, tr, "Współwłaściciel:", data.CoOwner)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Adres inwestycji"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(formatAddress(data.InvestmentAddress)), "", "L", false)
	pdf.Ln(2)

	s.renderProductSection(pdf, tr, data)
	s.renderPricingSection(pdf, tr, &data.Pricing)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(85, 5, tr("Zamawiający: "+data.Client.FullName), "T", 0, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Wykonawca: %s, %s", data.SalesRep.FullName, data.SalesRep.Position)), "T", 1, "C", false, 0, "")
}

func (s *PDFService) renderParty(pdf *fpdf.Fpdf, tr func(string) string, label string, c *models.ClientData) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr(label), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	lines := []string{c.FullName, formatAddress(c.Address)}
	if c.PESEL != "" {
		lines = append(lines, "PESEL: "+c.PESEL)
	}
	if c.NIP != "" {
		lines = append(lines, "NIP: "+c.NIP)
	}
	lines = append(lines, fmt.Sprintf("tel. %s, e-mail: %s", c.Phone, c.Email))
	pdf.MultiCell(0, 5, tr(strings.Join(lines, "\n")), "", "L", false)
	pdf.Ln(2)
}

func (s *PDFService) renderProductSection(pdf *fpdf.Fpdf, tr func(string) string, data *models.ContractData) {
	p := &data.Product

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Przedmiot umowy"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	backup := "podstawowy (EPS)"
	if !p.BackupEPS {
		backup = "pełny (SZR)"
	}
	lines := []string{
		fmt.Sprintf("Magazyn energii: %s %s, pojemność %.1f kWh", p.Brand, p.Model, p.BatteryCapacityKWh),
		fmt.Sprintf("Falownik: %s, moc %.1f kW", p.InverterModel, p.InverterPowerKW),
		fmt.Sprintf("System zarządzania energią: %s", p.EMS),
		fmt.Sprintf("Zasilanie awaryjne: %s", backup),
		fmt.Sprintf("Istniejąca instalacja PV: %.2f kWp, falownik %s %s, OSD: %s",
			data.ExistingPV.PowerKWp, data.ExistingPV.InverterBrand, data.ExistingPV.InverterModel,
			models.OSDName(data.ExistingPV.OSD)),
	}
	pdf.MultiCell(0, 5, tr(strings.Join(lines, "\n")), "", "L", false)
	pdf.Ln(2)
}

func (s *PDFService) renderPricingSection(pdf *fpdf.Fpdf, tr func(string) string, p *models.Pricing) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Wynagrodzenie"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	gross := decimal.NewFromFloat(p.GrossPrice)
	rows := [][2]string{
		{"Cena netto", pricing.FormatPLN(decimal.NewFromFloat(p.NetPrice))},
		{fmt.Sprintf("VAT (%d%%)", p.VATRate), pricing.FormatPLN(decimal.NewFromFloat(p.VATAmount))},
		{"Cena brutto", pricing.FormatPLN(gross)},
	}
	for _, row := range rows {
		pdf.CellFormat(100, 6, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(row[1]), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.MultiCell(0, 5, tr("Słownie: "+pricing.AmountInWords(gross)), "", "L", false)
	pdf.Ln(2)

	pdf.MultiCell(0, 5, tr("Harmonogram płatności:"), "", "L", false)
	tranches := [][2]string{
		{fmt.Sprintf("Transza I (%d%%) - zaliczka", p.Tranches.T1Percent), pricing.FormatPLN(decimal.NewFromFloat(p.Tranches.T1Amount))},
		{fmt.Sprintf("Transza II (%d%%) - dostawa urządzeń", p.Tranches.T2Percent), pricing.FormatPLN(decimal.NewFromFloat(p.Tranches.T2Amount))},
		{fmt.Sprintf("Transza III (%d%%) - po montażu i uruchomieniu", p.Tranches.T3Percent), pricing.FormatPLN(decimal.NewFromFloat(p.Tranches.T3Amount))},
	}
	for _, row := range tranches {
		pdf.CellFormat(100, 6, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(row[1]), "1", 1, "R", false, 0, "")
	}

	if p.Financing != models.FinancingOwnFunds {
		pdf.Ln(2)
		form := "kredyt"
		if p.Financing == models.FinancingLeasing {
			form = "leasing"
		}
		pdf.MultiCell(0, 5, tr(fmt.Sprintf(
			"Finansowanie: %s (%s), wkład własny: %s",
			form, p.FinancingInstitution,
			pricing.FormatPLN(decimal.NewFromFloat(p.OwnContribution)),
		)), "", "L", false)
	}
}

func (s *PDFService) renderRODOSection(pdf *fpdf.Fpdf, tr func(string) string, data *models.ContractData) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Załącznik: Klauzula informacyjna RODO"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(
		"Administratorem danych osobowych Zamawiającego jest Wykonawca. Dane przetwarzane są w celu "+
			"realizacji umowy nr "+data.ContractNumber+", wypełnienia obowiązków prawnych ciążących na "+
			"Administratorze oraz dochodzenia ewentualnych roszczeń. Zamawiającemu przysługuje prawo dostępu "+
			"do danych, ich sprostowania, usunięcia, ograniczenia przetwarzania oraz wniesienia skargi do "+
			"Prezesa Urzędu Ochrony Danych Osobowych."), "", "L", false)
}

func (s *PDFService) renderPOAOSDSection(pdf *fpdf.Fpdf, tr func(string) string, data *models.ContractData) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Załącznik: Pełnomocnictwo - zgłoszenie do OSD"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"%s, zam. %s, udziela Wykonawcy pełnomocnictwa do reprezentowania przed operatorem systemu "+
			"dystrybucyjnego %s w zakresie zgłoszenia rozbudowy mikroinstalacji o magazyn energii pod adresem: %s.",
		data.Client.FullName, formatAddress(data.Client.Address),
		models.OSDName(data.ExistingPV.OSD), formatAddress(data.InvestmentAddress))), "", "L", false)
}

func (s *PDFService) renderPOASubsidySection(pdf *fpdf.Fpdf, tr func(string) string, data *models.ContractData) {
	program := subsidyProgramName(data.Attachments)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Załącznik: Pełnomocnictwo - wniosek o dotację"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"%s udziela Wykonawcy pełnomocnictwa do złożenia w imieniu Zamawiającego wniosku o dofinansowanie "+
			"w programie %s wraz z wymaganymi załącznikami.",
		data.Client.FullName, program)), "", "L", false)
}

func subsidyProgramName(a models.Attachments) string {
	switch a.SubsidyProgram {
	case models.SubsidyMojPrad:
		return "Mój Prąd"
	case models.SubsidyCzystePowietrze:
		return "Czyste Powietrze"
	default:
		if a.SubsidyProgramCustom != "" {
			return a.SubsidyProgramCustom
		}
		return string(a.SubsidyProgram)
	}
}

func formatAddress(a models.Address) string {
	return fmt.Sprintf("%s, %s %s", a.Street, a.PostalCode, a.City)
}
