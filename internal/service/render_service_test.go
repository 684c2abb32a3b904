package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSubstitutesVariables(t *testing.T) {
	engine := NewRenderService()
	out := engine.Render("Hello {{name}}, your score is {{score}}.", map[string]string{
		"name":  "Kim",
		"score": "95",
	})
	assert.Equal(t, "Hello Kim, your score is 95.", out)
}

func TestRenderMissingVariableBecomesEmpty(t *testing.T) {
	engine := NewRenderService()
	out := engine.Render("Hello {{name}}, your score is {{score}}.", map[string]string{"name": "Kim"})
	assert.Equal(t, "Hello Kim, your score is .", out)
}

func TestRenderEscapesHTMLByDefault(t *testing.T) {
	engine := NewRenderService()
	out := engine.Render("Comment: {{comment}}", map[string]string{
		"comment": `<script>alert("x")</script>`,
	})
	assert.Equal(t, "Comment: &lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;", out)
}

func TestRenderRawKeysBypassEscaping(t *testing.T) {
	engine := NewRenderService()
	vars := map[string]string{"chart": "<svg></svg>", "comment": "<b>hi</b>"}
	out := engine.Render("{{chart}} {{comment}}", vars, "chart")
	assert.Equal(t, "<svg></svg> &lt;b&gt;hi&lt;/b&gt;", out)
}

func TestRenderRepeatedToken(t *testing.T) {
	engine := NewRenderService()
	out := engine.Render("{{name}} and {{name}}", map[string]string{"name": "Kim"})
	assert.Equal(t, "Kim and Kim", out)
}

func TestRenderLeavesMalformedTokensAlone(t *testing.T) {
	engine := NewRenderService()
	out := engine.Render("{{name} {name}} {{ name }}", map[string]string{"name": "Kim"})
	assert.Equal(t, "{{name} {name}} {{ name }}", out)
}

func TestRenderIsDeterministic(t *testing.T) {
	engine := NewRenderService()
	vars := map[string]string{"a": "1", "b": "2"}
	first := engine.Render("{{a}}{{b}}{{a}}", vars)
	second := engine.Render("{{a}}{{b}}{{a}}", vars)
	assert.Equal(t, first, second)
	assert.Equal(t, "121", first)
}

func TestScanVariablesOrderedAndUnique(t *testing.T) {
	engine := NewRenderService()
	vars := engine.ScanVariables("{{b}} {{a}} {{b}} {{c}} {{a}}")
	assert.Equal(t, []string{"b", "a", "c"}, vars)
}

func TestScanVariablesEmptyBody(t *testing.T) {
	engine := NewRenderService()
	assert.Empty(t, engine.ScanVariables("no tokens here"))
}

func TestPreviewUsesSampleDataset(t *testing.T) {
	engine := NewRenderService()
	out := engine.Preview("{{studentName}} attended {{attendanceRate}}% of classes")
	assert.Equal(t, "Kim Minjun attended 95% of classes", out)
}

func TestSampleVariablesReturnsFreshCopy(t *testing.T) {
	first := SampleVariables()
	first["studentName"] = "mutated"
	assert.Equal(t, "Kim Minjun", SampleVariables()["studentName"])
}
