// Package pdf genera el reporte de servicios en PDF para administración.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del salón  │  Fecha de emisión              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Profesional | Cliente | Servicio | Estado   │
//	│         | Costo                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: cantidad de servicios / costo total de productos  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/pkg/dates"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 136, Green: 14, Blue: 79} // magenta del salón
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorRed     = &props.Color{Red: 183, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ServiceReportGenerator genera el reporte de servicios usando Maroto v2.
type ServiceReportGenerator struct {
	salonName string
	dates     *dates.Formatter
}

// NewServiceReportGenerator construye el generador.
func NewServiceReportGenerator(salonName string, f *dates.Formatter) *ServiceReportGenerator {
	return &ServiceReportGenerator{salonName: salonName, dates: f}
}

// Generate genera el PDF del reporte y devuelve sus bytes. Los servicios
// llegan ya filtrados por el caso de uso; el costo por servicio se recalcula
// con el unit_cost vigente (nunca hay un total cacheado).
func (g *ServiceReportGenerator) Generate(services []*entity.Service) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Serviços", true).
		WithAuthor(g.salonName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, s := range services {
		cost := s.TotalCost()
		total = total.Add(cost)
		m.AddRows(g.detailRow(s, cost))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(len(services), total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ServiceReportGenerator) headerRow() core.Row {
	emitido := g.dates.FormatDateTimeBR(g.dates.Now())
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.salonName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Relatório de Serviços", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido em: "+emitido, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("Profissional", 2, align.Left),
		h("Cliente", 2, align.Left),
		h("Serviço", 3, align.Left),
		h("Status", 1, align.Center),
		h("Custo", 2, align.Right),
	)
}

func (g *ServiceReportGenerator) detailRow(s *entity.Service, cost decimal.Decimal) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	statusColor := colorGray
	switch entity.NormalizeStatus(s.Status) {
	case entity.StatusApproved:
		statusColor = colorGreen
	case entity.StatusRejected:
		statusColor = colorRed
	}
	return row.New(7).Add(
		cell(g.dates.DatabaseToBR(s.ServiceDate), 2, align.Left),
		cell(s.ProfessionalName, 2, align.Left),
		cell(s.ClientName, 2, align.Left),
		cell(s.ServiceName, 3, align.Left),
		col.New(1).Add(text.New(statusLabel(s.Status), props.Text{
			Size: 7.5, Align: align.Center, Top: 1, Color: statusColor,
		})),
		cell("R$ "+formatMoney(cost), 2, align.Right),
	)
}

func totalsRow(count int, total decimal.Decimal) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Serviços no relatório: %d", count), props.Text{
				Size: 9, Top: 3, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Custo total de produtos: R$ "+formatMoney(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3,
			}),
		),
	)
}

// ── Utilidades ────────────────────────────────────────────────────────────────

// statusLabel etiqueta en portugués para el reporte.
func statusLabel(status string) string {
	switch entity.NormalizeStatus(status) {
	case entity.StatusApproved:
		return "Aprovado"
	case entity.StatusRejected:
		return "Recusado"
	default:
		return "Pendente"
	}
}

// formatMoney formatea un decimal al estilo brasileño: 1.234,56.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2) // 1234.56
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
