package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyplan/internal/progress"
	"github.com/sadopc/studyplan/internal/store"
)

type progressModel struct {
	store  *store.Store
	width  int
	height int

	weekly   int
	monthly  int
	subjects []progress.SubjectStat
	daily    []progress.DayTotal

	chart barchart.Model
}

func newProgressModel(s *store.Store) progressModel {
	return progressModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (m *progressModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type progressDataMsg struct {
	weekly   int
	monthly  int
	subjects []progress.SubjectStat
	daily    []progress.DayTotal
}

func (m progressModel) refresh() tea.Cmd {
	all := m.store.All()
	return func() tea.Msg {
		now := time.Now()
		return progressDataMsg{
			weekly:   progress.WeeklyRate(all, now),
			monthly:  progress.MonthlyRate(all, now),
			subjects: progress.SubjectBreakdown(all),
			daily:    progress.DailyCompletedTime(all, now),
		}
	}
}

func (m progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDataMsg:
		m.weekly = msg.weekly
		m.monthly = msg.monthly
		m.subjects = msg.subjects
		m.daily = msg.daily
		m.buildChart()
		return m, nil
	}
	return m, nil
}

func (m *progressModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if m.height > 30 {
		chartHeight = 12
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range m.daily {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if day.Minutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Label,
			Values: []barchart.BarValue{
				{Name: day.Label, Value: float64(day.Minutes), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m progressModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Progress")

	rateRows := []string{
		fmt.Sprintf("  %-22s %s %s", "Weekly Completion", renderBar(m.weekly, 30), highlightStyle.Render(fmt.Sprintf("%3d%%", m.weekly))),
		fmt.Sprintf("  %-22s %s %s", "Monthly Completion", renderBar(m.monthly, 30), highlightStyle.Render(fmt.Sprintf("%3d%%", m.monthly))),
	}

	subjectPanel := m.renderSubjects()
	chartTitle := titleStyle.Render("Time Spent (last 7 days, minutes)")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		strings.Join(rateRows, "\n"), "",
		subjectPanel, "",
		chartTitle,
		m.chart.View(),
	)
	return panelStyle.Width(w).Render(content)
}

func (m progressModel) renderSubjects() string {
	title := titleStyle.Render("Subject Breakdown")
	if len(m.subjects) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			mutedStyle.Render("  No subjects to display. Add tasks to see subject breakdown."))
	}

	rows := []string{title}
	for _, s := range m.subjects {
		rows = append(rows, fmt.Sprintf("  %-18s %s %s",
			s.Subject,
			renderBar(s.Percent, 24),
			mutedStyle.Render(fmt.Sprintf("%d/%d tasks (%d%%)", s.CompletedCount, s.TotalCount, s.Percent)),
		))
	}
	return strings.Join(rows, "\n")
}

// renderBar draws a simple horizontal percent bar.
func renderBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
