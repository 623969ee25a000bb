package utils

import "strings"

// NormalizeLogin padroniza login e email antes de comparar ou persistir
func NormalizeLogin(s string) string {
	login := strings.ToLower(s)
	login = strings.TrimSpace(login)
	return strings.ReplaceAll(login, " ", "")
}

// Dedupe remove repetições preservando a primeira ocorrência
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
