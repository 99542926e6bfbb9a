package game

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-fishing/internal/display"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["gold"] = display.Gold
	return fm
}()

var messages = template.Must(template.New("messages").Funcs(templateFuncs).Parse(`
{{- define "draw_cooldown" -}}
You can fish again in {{ .Seconds }} second{{ if ne .Seconds 1 }}s{{ end }}.
{{- end -}}
{{- define "caught" -}}
[{{ .Time }}] {{ .Name }} caught a {{ .Fish }}!
{{- end -}}
{{- define "caught_rare" -}}
[{{ .Time }}] {{ .Name }} caught the rare {{ .Fish }}!
{{- end -}}
{{- define "bought" -}}
You bought {{ .Item }} for {{ gold .Price }} gold. You have {{ gold .Gold }} gold left.
{{- end -}}
{{- define "skill_up" -}}
[{{ .Time }}] {{ .Name }}'s fishing skill rose to {{ .Skill }}!
{{- end -}}
{{- define "sold" -}}
[{{ .Time }}] {{ .Name }} sold {{ .Qty }} {{ .Item }} for {{ gold .Earned }} gold.
{{- end -}}
{{- define "sold_all" -}}
You sold {{ .Items | join ", " }} for {{ gold .Earned }} gold.
{{- end -}}
{{- define "sold_all_public" -}}
[{{ .Time }}] {{ .Name }} sold their whole catch for {{ gold .Earned }} gold.
{{- end -}}
{{- define "decomposed" -}}
You decomposed {{ .Qty }} {{ .Item }} into {{ .Qty }} {{ .Material }}.
{{- end -}}
{{- define "decomposed_symbols" -}}
You decomposed {{ .Qty }} {{ .Item }} and found: {{ .Symbols | join " " }}.
{{- end -}}
{{- define "decompose_choice" -}}
{{ .Item }} needs an option. Send "decompose {{ .Shard }}" or "decompose {{ .Event }}" to decompose {{ .Qty }}.
{{- end -}}
{{- define "decompose_cancelled" -}}
Your pending decomposition of {{ .Qty }} {{ .Item }} was cancelled.
{{- end -}}
{{- define "explore_cooldown" -}}
You can explore again in {{ .Seconds }} second{{ if ne .Seconds 1 }}s{{ end }}.
{{- end -}}
{{- define "encounter" -}}
Using {{ .Material }} you track down a {{ .Enemy }} with {{ .HP }} HP. Type "fight" or "flee".
{{- end -}}
{{- define "phase" -}}
Phase {{ .Phase }}: you deal {{ .Damage }} damage, the {{ .Enemy }} has {{ .HP }}/{{ .Initial }} HP left.
{{- end -}}
{{- define "victory" -}}
You defeated the {{ .Enemy }} and earned {{ .Reward }} {{ .Item }}.
{{- end -}}
{{- define "victory_public" -}}
[{{ .Time }}] {{ .Name }} defeated a {{ .Enemy }}!
{{- end -}}
{{- define "defeat" -}}
The {{ .Enemy }} survived {{ .Phases }} phases. You come back empty-handed.
{{- end -}}
{{- define "fled" -}}
You fled from the {{ .Enemy }}. You can explore again in {{ .Seconds }} second{{ if ne .Seconds 1 }}s{{ end }}.
{{- end -}}
{{- define "equipped" -}}
You equipped {{ .Item }}.
{{- end -}}
{{- define "aquarium_set" -}}
You put your {{ .Fish }} on display in your aquarium.
{{- end -}}
{{- define "aquarium_public" -}}
[{{ .Time }}] {{ .Name }} put their {{ .Fish }} on display.
{{- end -}}
{{- define "aquarium" -}}
{{ if .Fish }}Your aquarium displays your {{ .Fish }}.{{ else }}Your aquarium is empty.{{ end }}
{{- end -}}
{{- define "enhanced" -}}
[{{ .Time }}] {{ .Name }} enhanced their {{ .Rod }} to +{{ .Level }}!
{{- end -}}
{{- define "enhance_failed" -}}
Enhancement failed ({{ .Chance }}% chance). {{ .Qty }} {{ .Material }} consumed.
{{- end -}}
`))

type tdata map[string]any

// render expands one of the named message templates.
func render(name string, data tdata) string {
	var buf bytes.Buffer
	if err := messages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering message", "template", name, "error", err)
		return fmt.Sprintf("(%s)", name)
	}
	return buf.String()
}
