package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"pelada-manager/internal/domain"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldASCII strips diacritics so the digest survives messengers and SMS that
// mangle accented text
func foldASCII(s string) string {
	folded, _, err := transform.String(asciiFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// FormatPeladaSummary produces the shareable plain-text digest for a
// session: a day/month header, the standings ranked by points, and goal and
// assist blocks listing only players who scored or assisted. Blocks with no
// qualifying rows are omitted entirely, header included; the standings
// header is always present.
func FormatPeladaSummary(date time.Time, standings []domain.TeamStanding, stats []domain.PlayerStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Resumo da Pelada - %02d/%02d\n", date.Day(), int(date.Month()))

	b.WriteString("\nClassificacao:\n")
	ranked := append([]domain.TeamStanding(nil), standings...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points() > ranked[j].Points() })
	for i, s := range ranked {
		fmt.Fprintf(&b, "%d. %s - %d Pontos(%dV %dE %dD)\n",
			i+1, foldASCII(s.TeamName), s.Points(), s.Wins, s.Draws, s.Losses)
	}

	scorers := filterSorted(stats,
		func(s domain.PlayerStats) int { return s.Goals })
	if len(scorers) > 0 {
		b.WriteString("\nGols:\n")
		for _, s := range scorers {
			fmt.Fprintf(&b, "%s: %d\n", foldASCII(s.Name), s.Goals)
		}
	}

	assisters := filterSorted(stats,
		func(s domain.PlayerStats) int { return s.Assists })
	if len(assisters) > 0 {
		b.WriteString("\nAssistencias:\n")
		for _, s := range assisters {
			fmt.Fprintf(&b, "%s: %d\n", foldASCII(s.Name), s.Assists)
		}
	}

	return b.String()
}

// filterSorted keeps players with a positive metric, ordered metric desc then
// name asc. Names compare in their folded form so the order matches the
// rendered strings.
func filterSorted(stats []domain.PlayerStats, metric func(domain.PlayerStats) int) []domain.PlayerStats {
	kept := make([]domain.PlayerStats, 0, len(stats))
	for _, s := range stats {
		if metric(s) > 0 {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if metric(kept[i]) != metric(kept[j]) {
			return metric(kept[i]) > metric(kept[j])
		}
		return foldASCII(kept[i].Name) < foldASCII(kept[j].Name)
	})
	return kept
}
