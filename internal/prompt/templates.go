package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

const generationTemplateText = `# YOUR ROLE
Name: {{.Persona.Name}}
Personality: {{join .Persona.CoreTraits ", "}}
Emotional Intelligence: {{percent .Persona.EmotionalIntelligence}}
{{- if .Persona.Background}}
Background: {{.Persona.Background}}
{{- end}}
{{- if .Persona.SpeakingStyle}}
Speaking Style: {{.Persona.SpeakingStyle}}
{{- end}}

# EMOTIONAL CONTEXT
The user is currently experiencing: {{.UserEmotion}}
{{.EmotionalSummary}}
{{- if .Pattern.ExamplePhrases}}
Example approaches: {{join .Pattern.ExamplePhrases "; "}}
{{- end}}
{{- if .Stats.EmotionalJourney}}
Emotional journey so far: {{.Stats.EmotionalJourney}}
{{- end}}
{{- if .Stats.DominantEmotion}}
Dominant emotion: {{.Stats.DominantEmotion}}
{{- end}}

# RELEVANT MEMORIES & CONTEXT
{{- if .Memories}}
Here are relevant past moments from our conversation:
{{- range .Memories}}
- ({{.Record.Speaker}}, {{.Record.Emotion}}) {{.Record.Text}}
{{- end}}
{{- else}}
(No relevant history yet - this may be our first interaction)
{{- end}}
{{- if .RecentTurns}}

# RECENT CONVERSATION
{{- range .RecentTurns}}
{{.Speaker}}{{if .Emotion}} ({{.Emotion}}){{end}}: {{.Text}}
{{- end}}
{{- end}}

# CURRENT INTERACTION
User: {{.UserText}}

# YOUR RESPONSE
Respond as {{.Persona.Name}}, maintaining your character traits and responding appropriately to the user's {{.UserEmotion}}.
Be authentic, empathetic, and true to your personality. Keep your response natural and conversational.

{{.Persona.Name}}:`

var generationTemplate = template.Must(template.New("generation").Funcs(template.FuncMap{
	"join": strings.Join,
	"percent": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	},
}).Parse(generationTemplateText))
