package dates_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmendes/servicos-api/pkg/dates"
)

// La fecha de calendario debe sobrevivir el round-trip display -> almacén ->
// display para cualquier offset UTC, de UTC-12 a UTC+14.
func TestForDatabase_EstableEnTodosLosOffsets(t *testing.T) {
	for offset := -12; offset <= 14; offset++ {
		name := fmt.Sprintf("UTC%+d", offset)
		t.Run(name, func(t *testing.T) {
			loc := time.FixedZone(name, offset*3600)
			f := dates.NewInLocation(loc)

			// Medianoche exacta: el caso que la conversión vía UTC rompe.
			selected := time.Date(2025, 8, 3, 0, 0, 0, 0, loc)
			assert.Equal(t, "2025-08-03", f.ForDatabase(selected),
				"la fecha almacenada no debe correrse de día")

			// Fin del día, el otro borde.
			selected = time.Date(2025, 8, 3, 23, 59, 59, 0, loc)
			assert.Equal(t, "2025-08-03", f.ForDatabase(selected))

			assert.Equal(t, "03/08/2025", f.DatabaseToBR(f.ForDatabase(selected)))
		})
	}
}

func TestForDatabase_RoundTripConParseBR(t *testing.T) {
	for offset := -12; offset <= 14; offset++ {
		loc := time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)
		f := dates.NewInLocation(loc)

		parsed, ok := f.ParseBR("03/08/2025")
		require.True(t, ok)
		assert.Equal(t, "03/08/2025", f.FormatBR(parsed))
		assert.Equal(t, "2025-08-03", f.ForDatabase(parsed))
	}
}

// Las tres formas que produce el almacén deben rendir el mismo display.
func TestDatabaseToBR_TresFormasDeEntrada(t *testing.T) {
	f := dates.NewInLocation(time.UTC)

	cases := []string{
		"2025-08-03",
		"2025-08-03 10:30:00",
		"2025-08-03T10:30:00.000Z",
	}
	for _, stored := range cases {
		assert.Equal(t, "03/08/2025", f.DatabaseToBR(stored), "entrada: %s", stored)
	}
}

// Entrada malformada: passthrough sin modificar, nunca pánico.
func TestDatabaseToBR_EntradaNoReconocida(t *testing.T) {
	f := dates.NewInLocation(time.UTC)

	assert.Equal(t, "", f.DatabaseToBR(""))
	assert.Equal(t, "no-es-fecha", f.DatabaseToBR("no-es-fecha"))
	assert.Equal(t, "2025/08/03", f.DatabaseToBR("2025/08/03"))
	assert.Equal(t, "03-08-2025", f.DatabaseToBR("03-08-2025"), "orden DD-MM-YYYY no es formato de almacén")
}

func TestFormatBR_FechaCero(t *testing.T) {
	f := dates.NewInLocation(time.UTC)
	assert.Equal(t, "", f.FormatBR(time.Time{}))
	assert.Equal(t, "", f.ForDatabase(time.Time{}))
}

func TestParseBR_Invalidas(t *testing.T) {
	f := dates.NewInLocation(time.UTC)

	for _, in := range []string{"", "3/8", "aa/bb/cccc", "31/02/2025", "00/01/2025", "15/13/2025"} {
		_, ok := f.ParseBR(in)
		assert.False(t, ok, "debe rechazar %q", in)
	}
}

func TestParseDatabase(t *testing.T) {
	f := dates.NewInLocation(time.UTC)

	parsed, ok := f.ParseDatabase("2025-08-03T10:30:00.000Z")
	require.True(t, ok)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.August, parsed.Month())
	assert.Equal(t, 3, parsed.Day())

	_, ok = f.ParseDatabase("garbage")
	assert.False(t, ok)
}

// El formato de pantalla nunca es válido como formato de almacén: una fecha
// "DD/MM/YYYY" escrita en una columna date se interpreta según el DateStyle
// del servidor y puede cambiar de día.
func TestParseDatabase_RechazaFormatoDePantalla(t *testing.T) {
	f := dates.NewInLocation(time.UTC)

	for _, in := range []string{"03/08/2025", "3/8/2025", "03/08/2025 10:30:00"} {
		_, ok := f.ParseDatabase(in)
		assert.False(t, ok, "debe rechazar %q", in)
	}
}

// Mediodía como hora canónica evita que el horario de verano mueva el día.
func TestToday_Mediodia(t *testing.T) {
	f, err := dates.New(dates.DefaultTimezone)
	require.NoError(t, err)

	today := f.Today()
	assert.Equal(t, 12, today.Hour())
	assert.Equal(t, f.Location(), today.Location())
}
