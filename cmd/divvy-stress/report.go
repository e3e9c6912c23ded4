package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/divvy/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Components int
	ChurnRate  float64
	CloneRate  float64

	// Results
	Respawned      int64
	Clones         int64
	TotalTime      time.Duration
	UpdateTime     ecs.LoopStats
	World          *ecs.WorldStats
	Mirror         *ecs.WorldStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Divvy Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Component Types:** {{.Components}}
- **Churn Rate:** {{.ChurnRate}}
- **Clone Rate:** {{.CloneRate}}

## Performance Results
- **Total Passes:** {{.UpdateTime.Passes}}
- **Total Test Time:** {{.TotalTime}}
- **Respawned Entities:** {{.Respawned}}
- **Cross-World Clones:** {{.Clones}}
- **Update Time (Pass):**
  - **Avg:** {{.UpdateTime.AvgDuration}}
  - **Min:** {{.UpdateTime.MinDuration}}
  - **Max:** {{.UpdateTime.MaxDuration}}
{{template "world" .World}}{{if .Mirror}}{{template "world" .Mirror}}{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc | mb}} MB
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc | mb}} MB
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys | mb}} MB
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	const worldTemplate = `
## World {{.Name}}
- **Capacity:** {{.Capacity}}
- **Live Entities:** {{.EntityCount}}
- **Free Slots:** {{.FreeSlots}}
{{range .Components}}  - {{.Name}}: {{.Active}} active / {{.Len}} slots
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	if _, err := tmpl.New("world").Parse(worldTemplate); err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
