package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusDraft            ContractStatus = "DRAFT"
	ContractStatusGenerated        ContractStatus = "GENERATED"
	ContractStatusSentForSignature ContractStatus = "SENT_FOR_SIGNATURE"
	ContractStatusSigned           ContractStatus = "SIGNED"
)

// StatusLabel returns the Polish display label shown on the dashboard.
func StatusLabel(s ContractStatus) string {
	switch s {
	case ContractStatusDraft:
		return "Szkic"
	case ContractStatusGenerated:
		return "Wygenerowana"
	case ContractStatusSentForSignature:
		return "Wysłana do podpisu"
	case ContractStatusSigned:
		return "Podpisana"
	default:
		return string(s)
	}
}

type FinancingType string

const (
	FinancingOwnFunds FinancingType = "OWN_FUNDS"
	FinancingCredit   FinancingType = "CREDIT"
	FinancingLeasing  FinancingType = "LEASING"
)

type BuildingType string

const (
	BuildingResidentialUnder300 BuildingType = "RESIDENTIAL_UNDER_300"
	BuildingResidentialOver300  BuildingType = "RESIDENTIAL_OVER_300"
	BuildingNonResidential      BuildingType = "NON_RESIDENTIAL"
)

type MeetingType string

const (
	MeetingScheduled   MeetingType = "SCHEDULED"
	MeetingUnscheduled MeetingType = "UNSCHEDULED"
	MeetingRemote      MeetingType = "REMOTE"
)

type SubsidyProgram string

const (
	SubsidyMojPrad        SubsidyProgram = "MOJ_PRAD"
	SubsidyCzystePowietrze SubsidyProgram = "CZYSTE_POWIETRZE"
	SubsidyOther          SubsidyProgram = "OTHER"
)

type OSDOperator string

const (
	OSDPGE    OSDOperator = "PGE"
	OSDTauron OSDOperator = "TAURON"
	OSDEnea   OSDOperator = "ENEA"
	OSDEnerga OSDOperator = "ENERGA"
	OSDStoen  OSDOperator = "STOEN"
	OSDOther  OSDOperator = "INNY"
)

// OSDName returns the full legal name of a distribution system operator.
func OSDName(osd OSDOperator) string {
	switch osd {
	case OSDPGE:
		return "PGE Dystrybucja S.A."
	case OSDTauron:
		return "TAURON Dystrybucja S.A."
	case OSDEnea:
		return "ENEA Operator sp. z o.o."
	case OSDEnerga:
		return "ENERGA-OPERATOR S.A."
	case OSDStoen:
		return "Stoen Operator sp. z o.o."
	default:
		return string(osd)
	}
}

type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type ClientData struct {
	FullName string  `json:"full_name"`
	Address  Address `json:"address"`
	PESEL    string  `json:"pesel,omitempty"`
	NIP      string  `json:"nip,omitempty"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
}

type ExistingPV struct {
	PowerKWp                 float64     `json:"power_kwp"`
	InverterBrand            string      `json:"inverter_brand"`
	InverterModel            string      `json:"inverter_model"`
	OSD                      OSDOperator `json:"osd"`
	OSDCustom                string      `json:"osd_custom,omitempty"`
	CurrentConnectionPowerKW float64     `json:"current_connection_power_kw"`
	NeedsPowerIncrease       bool        `json:"needs_power_increase"`
	TargetConnectionPowerKW  float64     `json:"target_connection_power_kw,omitempty"`
}

type ProductSelection struct {
	ID                 string  `json:"id"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
	InverterModel      string  `json:"inverter_model"`
	InverterPowerKW    float64 `json:"inverter_power_kw"`
	Type               string  `json:"type"`
	EMS                string  `json:"ems"`
	BackupEPS          bool    `json:"backup_eps"`
	AdditionalItems    []string `json:"additional_items,omitempty"`
}

// TrancheSchedule is the frozen 30/60/10 payment split of the gross price.
// Amounts always sum to the gross exactly; the third tranche carries the
// rounding residual.
type TrancheSchedule struct {
	T1Percent int     `json:"t1_percent"`
	T1Amount  float64 `json:"t1_amount"`
	T2Percent int     `json:"t2_percent"`
	T2Amount  float64 `json:"t2_amount"`
	T3Percent int     `json:"t3_percent"`
	T3Amount  float64 `json:"t3_amount"`
}

// Pricing holds the financial terms of one contract. NetPrice, VATAmount
// and Tranches are derived and recomputed on every gross-or-rate change;
// ContractPrice may move at most ±5% from OfferPrice.
type Pricing struct {
	OfferPrice           float64         `json:"offer_price"`
	ContractPrice        float64         `json:"contract_price"`
	VATRate              int             `json:"vat_rate"`
	NetPrice             float64         `json:"net_price"`
	VATAmount            float64         `json:"vat_amount"`
	GrossPrice           float64         `json:"gross_price"`
	Financing            FinancingType   `json:"financing"`
	OwnContribution      float64         `json:"own_contribution,omitempty"`
	FinancingInstitution string          `json:"financing_institution,omitempty"`
	Tranches             TrancheSchedule `json:"tranches"`
}

type Declarations struct {
	BuildingType        BuildingType `json:"building_type"`
	BuildingAreaM2      float64      `json:"building_area_m2,omitempty"`
	ConnectionReady     bool         `json:"connection_ready"`
	ElectricalCompliant bool         `json:"electrical_compliant"`
	MeetingType         MeetingType  `json:"meeting_type"`
	ElectronicInvoices  bool         `json:"electronic_invoices"`
}

type Attachments struct {
	PoaOSD               bool           `json:"poa_osd"`
	PoaSubsidy           bool           `json:"poa_subsidy"`
	SubsidyProgram       SubsidyProgram `json:"subsidy_program,omitempty"`
	SubsidyProgramCustom string         `json:"subsidy_program_custom,omitempty"`
	AUM                  bool           `json:"aum"`
}

type SalesRep struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
}

// ContractData is the full document record a generated contract is
// rendered from. Once the contract leaves DRAFT status the record is
// frozen.
type ContractData struct {
	ContractNumber    string           `json:"contract_number"`
	ContractDate      string           `json:"contract_date"`
	ContractCity      string           `json:"contract_city"`
	Client            ClientData       `json:"client"`
	CoOwner           *ClientData      `json:"co_owner,omitempty"`
	InvestmentAddress Address          `json:"investment_address"`
	ExistingPV        ExistingPV       `json:"existing_pv"`
	Product           ProductSelection `json:"product"`
	Pricing           Pricing          `json:"pricing"`
	Declarations      Declarations     `json:"declarations"`
	Attachments       Attachments      `json:"attachments"`
	SalesRep          SalesRep         `json:"sales_rep"`
}

// Contract is the persisted aggregate: the document record plus the
// dashboard summary columns.
type Contract struct {
	ID             uuid.UUID      `db:"id"`
	UserID         uuid.UUID      `db:"user_id"`
	ContractNumber string         `db:"contract_number"`
	ClientName     string         `db:"client_name"`
	ProductName    string         `db:"product_name"`
	GrossPrice     float64        `db:"gross_price"`
	Status         ContractStatus `db:"status"`
	Data           ContractData   `db:"data"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
