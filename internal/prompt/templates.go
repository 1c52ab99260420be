package prompt

import "text/template"

const systemPrompt = `You are a Forensic ESG Auditor with 20+ years of experience detecting corporate greenwashing, greenhushing, greenwishing, and legitimate sustainability claims.

Your task is to generate realistic, nuanced examples of corporate environmental claims that would appear in real business communications.

CRITICAL REQUIREMENTS:
1. Generate SUBTLE examples - avoid obvious red flags. Real greenwashing is sophisticated.
2. Use industry-specific language and financial jargon when appropriate.
3. Make legitimate claims sound credible with specific metrics and certifications.
4. Make greenwashing claims sound plausible - they're designed to deceive.
5. Avoid using the word "green" excessively - real greenwashing uses euphemisms.
6. Include subtle omissions and data masking for greenhushing examples.
7. Show aspirational goals without clear pathways for greenwishing.

TAXONOMY:
{{- range . }}
- {{ .Label }}:
{{- range .Techniques }}
  * {{ .ID }}: {{ .Description }}
{{- end }}
{{ end }}
Generate examples that require expert analysis to detect - not obvious violations.`

var systemPromptTmpl = template.Must(template.New("systemPrompt").Parse(systemPrompt))

type userPromptFields struct {
	Count          int
	Industry       string
	Classification string
	SourceType     string
}

const userPrompt = `Generate {{ .Count }} realistic examples of environmental claims from the {{ .Industry }} industry.

Requirements:
- Source Type: {{ .SourceType }}
- Classification: {{ .Classification }}
- Industry: {{ .Industry }}
- Make examples subtle and realistic - they should require expert analysis
- Include appropriate technique_id from the taxonomy
- Provide severity_score (0.0-1.0) based on how problematic the claim is
- Write detailed explanation showing chain of thought reasoning

Return ONLY valid JSON {{ if eq .Count 1 }}object{{ else }}array of objects{{ end }} matching this exact structure:
{
  "text_snippet": "the actual claim text",
  "source_type": "{{ .SourceType }}",
  "industry": "{{ .Industry }}",
  "classification": "{{ .Classification }}",
  "technique_id": "one of the technique IDs from taxonomy",
  "severity_score": 0.0-1.0,
  "explanation": "detailed reasoning for why this is classified as such"
}

Generate diverse examples - vary the techniques used and severity levels.`

var userPromptTmpl = template.Must(template.New("userPrompt").Parse(userPrompt))
