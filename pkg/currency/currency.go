// Package currency converte valores monetários entre centavos, texto digitado e texto formatado (pt-BR).
//
// O valor canônico é sempre um inteiro de centavos. Conversões para reais só acontecem na borda de exibição.
package currency

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	Symbol             = "R$"
	thousandsSeparator = "."
	decimalSeparator   = ","

	// maxIntegerDigits limita a parte inteira para não estourar int64 ao multiplicar por 100
	maxIntegerDigits = 15
)

// MaxCents é o maior valor aceito pelas conversões (R$ 999.999.999.999.999,99)
const MaxCents int64 = 99999999999999999

var (
	ErrInvalidPercentage = errors.New("percentual inválido")

	hundred = decimal.NewFromInt(100)
)

// Format renderiza centavos como "R$ 1.234,56".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return sign + Symbol + " " + FormatPlain(cents)
}

// FormatPlain renderiza centavos sem símbolo, com separador de milhar: "1.234,56".
func FormatPlain(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	fixed := decimal.New(cents, -2).StringFixed(2)
	integer, fraction, _ := strings.Cut(fixed, ".")

	return sign + groupThousands(integer) + decimalSeparator + fraction
}

// FormatEditing retorna o texto usado enquanto o campo está em edição: "1234,56", sem milhar.
func FormatEditing(cents int64) string {
	fixed := decimal.New(cents, -2).StringFixed(2)
	return strings.Replace(fixed, ".", decimalSeparator, 1)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// ParseInputToCents interpreta texto livre digitado pelo usuário e devolve centavos.
// Nunca falha: entrada vazia, sem dígitos, negativa ou grande demais resulta em 0.
func ParseInputToCents(raw string) int64 {
	cents, ok := parse(raw)
	if !ok {
		return 0
	}
	return cents
}

// IsValidCurrencyInput informa se o texto contém um valor monetário utilizável.
func IsValidCurrencyInput(raw string) bool {
	_, ok := parse(raw)
	return ok
}

// IsNegativeInput identifica texto com sinal de menos, que a validação rejeita como valor negativo.
func IsNegativeInput(raw string) bool {
	return strings.HasPrefix(stripSymbols(raw), "-")
}

func parse(raw string) (int64, bool) {
	text := stripSymbols(raw)
	if text == "" || strings.HasPrefix(text, "-") {
		return 0, false
	}

	var integer, fraction string

	switch {
	case strings.Contains(text, decimalSeparator):
		idx := strings.LastIndex(text, decimalSeparator)
		integer = digitsOnly(text[:idx])
		fraction = digitsOnly(text[idx+1:])
	case strings.Contains(text, thousandsSeparator):
		segments := strings.Split(text, thousandsSeparator)
		last := digitsOnly(segments[len(segments)-1])
		if len(segments) > 1 && len(last) == 2 {
			integer = digitsOnly(strings.Join(segments[:len(segments)-1], ""))
			fraction = last
		} else {
			integer = digitsOnly(text)
		}
	default:
		integer = digitsOnly(text)
	}

	if integer == "" && fraction == "" {
		return 0, false
	}

	integer = strings.TrimLeft(integer, "0")
	if len(integer) > maxIntegerDigits {
		return 0, false
	}

	fraction = normalizeFraction(fraction)

	units := int64(0)
	if integer != "" {
		parsed, err := strconv.ParseInt(integer, 10, 64)
		if err != nil {
			return 0, false
		}
		units = parsed
	}

	cents, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return 0, false
	}

	return units*100 + cents, true
}

// stripSymbols remove símbolo de moeda e espaços, inclusive os não separáveis
func stripSymbols(raw string) string {
	text := strings.ReplaceAll(raw, Symbol, "")
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '$' || r == '€' || r == '£' {
			return -1
		}
		return r
	}, text)
	return text
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func normalizeFraction(fraction string) string {
	switch {
	case len(fraction) >= 2:
		return fraction[:2]
	case len(fraction) == 1:
		return fraction + "0"
	default:
		return "00"
	}
}

// ParsePercentage interpreta magnitudes como "10", "2,5", "-7.5%".
func ParsePercentage(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimSuffix(text, "%")
	text = strings.TrimSpace(text)
	text = strings.Replace(text, decimalSeparator, ".", 1)

	if text == "" {
		return decimal.Zero, ErrInvalidPercentage
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidPercentage, "%q", raw)
	}

	return value, nil
}

// ApplyPercentage calcula cents × (1 + pct/100), arredondando meio centavo para longe do zero.
// O resultado fica sempre entre 0 e MaxCents.
func ApplyPercentage(cents int64, pct decimal.Decimal) int64 {
	factor := decimal.NewFromInt(1).Add(pct.Div(hundred))
	result := decimal.NewFromInt(cents).Mul(factor).Round(0)
	switch {
	case result.Sign() < 0:
		return 0
	case result.GreaterThan(decimal.NewFromInt(MaxCents)):
		return MaxCents
	}
	return result.IntPart()
}

// ClampCents limita o valor ao intervalo que Format e ParseInputToCents representam
func ClampCents(cents int64) int64 {
	if cents > MaxCents {
		return MaxCents
	}
	return ClampNonNegative(cents)
}

// ClampNonNegative garante que nenhum valor negativo sobreviva a um ajuste.
func ClampNonNegative(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return cents
}
