package summary

import (
	"strings"
	"testing"
	"time"

	"pelada-manager/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFormatPeladaSummary(t *testing.T) {
	date := time.Date(2025, time.March, 9, 18, 0, 0, 0, time.UTC)
	standings := []domain.TeamStanding{
		{TeamID: 2, TeamName: "Time 2", Wins: 1, Draws: 3, Losses: 2},
		{TeamID: 3, TeamName: "Time 3", Wins: 5, Draws: 1, Losses: 0},
	}
	stats := []domain.PlayerStats{
		{PlayerID: 1, Name: "João", Goals: 4, Assists: 1},
		{PlayerID: 2, Name: "Bruno", Goals: 2},
		{PlayerID: 3, Name: "Ana", Goals: 2, Assists: 3},
		{PlayerID: 4, Name: "Davi"},
	}

	got := FormatPeladaSummary(date, standings, stats)

	want := strings.Join([]string{
		"Resumo da Pelada - 09/03",
		"",
		"Classificacao:",
		"1. Time 3 - 16 Pontos(5V 1E 0D)",
		"2. Time 2 - 6 Pontos(1V 3E 2D)",
		"",
		"Gols:",
		"Joao: 4",
		"Ana: 2",
		"Bruno: 2",
		"",
		"Assistencias:",
		"Ana: 3",
		"Joao: 1",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatPeladaSummaryOmitsEmptyBlocks(t *testing.T) {
	date := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	standings := []domain.TeamStanding{
		{TeamID: 1, TeamName: "Time 1"},
	}
	stats := []domain.PlayerStats{
		{PlayerID: 1, Name: "Ana", MatchesPlayed: 3},
	}

	got := FormatPeladaSummary(date, standings, stats)

	assert.Contains(t, got, "Classificacao:\n", "the standings header is always present")
	assert.NotContains(t, got, "Gols:")
	assert.NotContains(t, got, "Assistencias:")
}

func TestFormatPeladaSummaryNoStandings(t *testing.T) {
	got := FormatPeladaSummary(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), nil, nil)

	assert.Contains(t, got, "Resumo da Pelada - 01/12")
	assert.Contains(t, got, "Classificacao:")
}

func TestFormatPeladaSummaryTieBreakUsesFoldedNames(t *testing.T) {
	date := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	stats := []domain.PlayerStats{
		{PlayerID: 1, Name: "Bruno", Goals: 2},
		{PlayerID: 2, Name: "Ávila", Goals: 2},
	}

	got := FormatPeladaSummary(date, nil, stats)

	// "Ávila" renders as "Avila" and must sort as such
	assert.Contains(t, got, "Gols:\nAvila: 2\nBruno: 2\n")
}

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"João", "Joao"},
		{"Assistências", "Assistencias"},
		{"Seleção São-Bentão", "Selecao Sao-Bentao"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, foldASCII(tt.in))
	}
}
