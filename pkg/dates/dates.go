// Package dates normaliza fechas de calendario entre el formato de
// presentación brasileño (DD/MM/YYYY), el formato de almacenamiento
// (YYYY-MM-DD) y time.Time en la zona horaria del negocio.
//
// Invariante central: una fecha de calendario nunca cambia de día por
// conversión de zona horaria. Las conversiones hacia el almacén extraen
// los componentes año/mes/día directamente en la zona configurada; jamás
// pasan por UTC.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimezone zona horaria de negocio por defecto (Brasília).
const DefaultTimezone = "America/Sao_Paulo"

// Formatter convierte fechas con una configuración de zona explícita.
// Sustituye cualquier estado global de formato: cada caller recibe su
// Formatter por inyección.
type Formatter struct {
	loc *time.Location
}

// New construye un Formatter para el nombre de zona IANA dado.
func New(timezone string) (*Formatter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("dates: zona horaria %q: %w", timezone, err)
	}
	return &Formatter{loc: loc}, nil
}

// NewInLocation construye un Formatter con una *time.Location ya cargada.
func NewInLocation(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// Location devuelve la zona configurada.
func (f *Formatter) Location() *time.Location { return f.loc }

// Now devuelve la hora actual en la zona de negocio.
func (f *Formatter) Now() time.Time { return time.Now().In(f.loc) }

// Today devuelve la fecha de hoy a las 12:00 en la zona de negocio.
// El mediodía evita corrimientos de día por transiciones de horario de verano.
func (f *Formatter) Today() time.Time {
	now := f.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, f.loc)
}

// ForDatabase convierte una fecha a "YYYY-MM-DD" para el almacén remoto.
// Extrae los componentes en la zona de negocio; nunca usa UTC, porque la
// conversión ingenua corre el día cerca de medianoche en offsets negativos.
// Fecha cero devuelve cadena vacía.
func (f *Formatter) ForDatabase(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	local := t.In(f.loc)
	return fmt.Sprintf("%04d-%02d-%02d", local.Year(), int(local.Month()), local.Day())
}

// FormatBR formatea una fecha como "DD/MM/YYYY" en la zona de negocio.
// Fecha cero devuelve cadena vacía.
func (f *Formatter) FormatBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	local := t.In(f.loc)
	return fmt.Sprintf("%02d/%02d/%04d", local.Day(), int(local.Month()), local.Year())
}

// FormatDateTimeBR formatea fecha y hora como "DD/MM/YYYY HH:mm".
func (f *Formatter) FormatDateTimeBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format("02/01/2006 15:04")
}

// DatabaseToBR convierte una cadena del almacén a "DD/MM/YYYY".
// Acepta tres formas: fecha pura ("2025-08-03"), datetime con espacio
// ("2025-08-03 10:30:00") e ISO-8601 con "T" ("2025-08-03T10:30:00.000Z").
// Solo usa la porción de fecha; la hora se descarta. La conversión es
// puramente textual, sin pasar por time.Time, para que ningún offset
// pueda mover el día. Entrada no reconocida se devuelve sin modificar.
func (f *Formatter) DatabaseToBR(stored string) string {
	if stored == "" {
		return ""
	}

	datePart := stored
	if i := strings.IndexByte(datePart, 'T'); i >= 0 {
		datePart = datePart[:i]
	}
	if i := strings.IndexByte(datePart, ' '); i >= 0 {
		datePart = datePart[:i]
	}

	parts := strings.Split(datePart, "-")
	if len(parts) != 3 || !allDigits(parts[0]) || !allDigits(parts[1]) || !allDigits(parts[2]) {
		return stored
	}
	if len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return stored
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// ParseBR convierte "DD/MM/YYYY" a time.Time a las 12:00 en la zona de
// negocio. Devuelve el tiempo cero y false si la entrada es inválida.
func (f *Formatter) ParseBR(display string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(display), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := atoi(parts[0])
	month, err2 := atoi(parts[1])
	year, err3 := atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, f.loc)
	// time.Date normaliza fechas imposibles (31/02 -> 03/03); las rechazamos.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// ParseDatabase convierte "YYYY-MM-DD" (o las variantes con hora) a
// time.Time a las 12:00 en la zona de negocio. false si no es parseable.
// Solo acepta el formato de almacén: "DD/MM/YYYY" es formato de pantalla
// y se rechaza, una fecha así escrita en una columna date cambiaría de día
// según el DateStyle del servidor.
func (f *Formatter) ParseDatabase(stored string) (time.Time, bool) {
	br := f.DatabaseToBR(stored)
	// DatabaseToBR devuelve la entrada intacta cuando no la reconoce.
	if br == stored {
		return time.Time{}, false
	}
	return f.ParseBR(br)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) (int, error) {
	if !allDigits(s) {
		return 0, fmt.Errorf("no numérico: %q", s)
	}
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n, nil
}
