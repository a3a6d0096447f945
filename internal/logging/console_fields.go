package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const (
	maxInfoValue  = 120
	maxErrorValue = 200
)

type shownField struct {
	label string
	value string
}

// infoOrder lists the keys shown first on info lines, in order.
var infoOrder = []string{
	FieldEventType,
	FieldErrorKind,
	"error",
	FieldErrorHint,
	FieldImpact,
	FieldHash,
	FieldExitCode,
	FieldStderr,
	FieldROMPath,
	"root",
	"platforms",
	"scanned",
	"added",
	"hashed",
	"skipped",
	"failed",
	"unsupported",
	"scan_duration",
	"hash_duration",
}

var infoLabels = map[string]string{
	FieldEventType:  "Event",
	FieldErrorKind:  "Failure",
	FieldErrorHint:  "Hint",
	FieldROMPath:    "File",
	FieldHash:       "RA Hash",
	FieldExitCode:   "Exit Code",
	"scan_duration": "Scan Time",
	"hash_duration": "Hash Time",
}

// infoFields picks the fields worth showing at info level. Identifiers, tool
// arguments and overlong values count as hidden.
func infoFields(fields []field) ([]shownField, int) {
	rank := make(map[string]int, len(infoOrder))
	for i, key := range infoOrder {
		rank[key] = i
	}
	ordered := make([]field, 0, len(fields))
	for _, key := range infoOrder {
		for _, f := range fields {
			if f.key == key {
				ordered = append(ordered, f)
			}
		}
	}
	for _, f := range fields {
		if _, ok := rank[f.key]; !ok {
			ordered = append(ordered, f)
		}
	}

	var shown []shownField
	hidden := 0
	for _, f := range ordered {
		if f.key == FieldROMID || f.key == FieldPlatform {
			continue
		}
		if debugOnly(f.key) {
			hidden++
			continue
		}
		value := infoValue(f.key, f.value)
		if len(value) > maxInfoValue && f.key != "error" && f.key != FieldStderr && f.key != FieldROMPath {
			hidden++
			continue
		}
		shown = append(shown, shownField{label: labelFor(f.key), value: value})
	}
	return shown, hidden
}

func debugOnly(key string) bool {
	switch key {
	case FieldCorrelationID, "binary", "args", "platform_code":
		return true
	}
	return strings.HasSuffix(key, "_id") || strings.HasSuffix(key, "_dir")
}

func infoValue(key string, v slog.Value) string {
	switch {
	case v.Kind() == slog.KindDuration:
		return humanDuration(v.Duration())
	case v.Kind() == slog.KindInt64 && (key == "size" || strings.HasSuffix(key, "_size") || strings.HasSuffix(key, "_bytes")):
		return humanBytes(v.Int64())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case key == "error" || key == FieldStderr:
		text := strings.TrimSpace(plainValue(v))
		if len(text) > maxErrorValue {
			text = text[:maxErrorValue] + "…"
		}
		return text
	}
	return quotedValue(v)
}

func labelFor(key string) string {
	if label, ok := infoLabels[key]; ok {
		return label
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// plainValue renders v without quoting, for subjects and error text.
func plainValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindTime:
		return v.Time().Local().Format(consoleTimeLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	default:
		return v.String()
	}
}

// quotedValue is plainValue quoted when it is empty or has spaces, '=' or '"'.
func quotedValue(v slog.Value) string {
	s := plainValue(v)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
