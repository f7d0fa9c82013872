package tui

import (
	"fmt"
	"math"
	"strings"

	"docexplore/internal/domain"
	"docexplore/internal/textutil"
)

// highlightBestSentence emphasises the sentence sharing the most words with
// query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx, bestScore := 0, -1
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := textutil.Letters(s)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	for t := range toTokenSet(sentence) {
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

// renderLayout draws layout points on a width x height character grid, each
// marked by a letter listed in the legend below the grid.
func renderLayout(points []domain.LayoutPoint, width, height int) string {
	if len(points) == 0 {
		return "Layout unavailable."
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	scale := func(v, lo, hi float64, n int) int {
		if hi-lo < 1e-12 {
			return n / 2
		}
		return int(math.Round((v - lo) / (hi - lo) * float64(n-1)))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	var legend strings.Builder
	for i, p := range points {
		mark := marker(i)
		col := scale(p.X, minX, maxX, width)
		row := height - 1 - scale(p.Y, minY, maxY, height)
		if grid[row][col] == ' ' {
			grid[row][col] = mark
		} else {
			grid[row][col] = '*'
		}
		fmt.Fprintf(&legend, "%c  %s (%.3f, %.3f)\n", mark, p.Topic, p.X, p.Y)
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width) + "┐\n")
	for _, row := range grid {
		b.WriteString("│" + string(row) + "│\n")
	}
	b.WriteString("└" + strings.Repeat("─", width) + "┘\n")
	b.WriteString(legend.String())
	return b.String()
}

func marker(i int) rune {
	const marks = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	return rune(marks[i%len(marks)])
}
