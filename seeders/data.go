package seeders

import (
	"github.com/shopspring/decimal"

	"service-order-system/pkg/constants"
)

type demoTechnician struct {
	Name      string
	Specialty string
}

var demoTechnicians = []demoTechnician{
	{Name: "Ana Ribeiro", Specialty: "Hidráulica"},
	{Name: "Bruno Carvalho", Specialty: "Motor e transmissão"},
	{Name: "Carla Mendes", Specialty: "Elétrica embarcada"},
	{Name: "Diego Fontes", Specialty: "Colheitadeiras"},
}

// demoOrder — заявка для демо. Technician — индекс в demoTechnicians, -1 без техника.
type demoOrder struct {
	Number     string
	Type       constants.OrderType
	Status     constants.OrderStatus
	AgeDays    int
	Technician int
	Client     string
	Machine    string
	Chassis    string
	Labor      string
	Parts      string
	Travel     string
}

var demoOrders = []demoOrder{
	{"OS-1001", constants.OrderTypeNormal, constants.StatusActive, 2, 0, "Fazenda Santa Luzia", "Trator 6110J", "1BM6110JXKD001", "850.00", "1200.50", "150.00"},
	{"OS-1002", constants.OrderTypeWarranty, constants.StatusWaitingParts, 9, 1, "Agro Vale Verde", "Colheitadeira S680", "1CQS680AKE0102", "0", "4300.00", "0"},
	{"OS-1003", constants.OrderTypeNormal, constants.StatusWaitingBudgetApproval, 14, 2, "Sítio Boa Esperança", "Pulverizador M4030", "1N04030XPH0550", "400.00", "0", "90.00"},
	{"OS-1004", constants.OrderTypeNormal, constants.StatusWaitingPartsOrder, 31, 0, "Cooperativa Cerrado", "Plantadeira DB50", "1A0DB50XCKM200", "1200.00", "6400.00", "300.00"},
	{"OS-1005", constants.OrderTypeWarranty, constants.StatusWaitingPayment, 5, 3, "Fazenda Três Irmãos", "Trator 8R 340", "1RW8340RCMD090", "0", "0", "0"},
	{"OS-1006", constants.OrderTypeNormal, constants.StatusPaused, 120, 1, "Agropecuária Horizonte", "Retroescavadeira 310L", "1T0310LXKLF777", "2500.00", "980.00", "420.00"},
	{"OS-1007", constants.OrderTypeNormal, constants.StatusCompleted, 3, 2, "Fazenda Santa Luzia", "Trator 5075E", "1PY5075EHKK321", "600.00", "310.00", "0"},
	{"OS-1008", constants.OrderTypeNormal, constants.StatusCancelled, 40, -1, "Sítio do Ipê", "Roçadeira HX15", "", "0", "0", "0"},
	{"OS-1009", constants.OrderTypeWarranty, constants.StatusInvoiced, 60, 3, "Agro Vale Verde", "Colheitadeira S790", "1CQS790AJM0400", "1800.00", "9500.00", "250.00"},
	{"OS-1010", constants.OrderTypeNormal, constants.StatusActive, 95, -1, "Cooperativa Cerrado", "Trator 7230J", "1RW7230JCHD114", "0", "0", "0"},
}

func mustDecimal(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}
