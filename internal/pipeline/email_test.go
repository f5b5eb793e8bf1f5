package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reportkit/pkg/survey"
)

func TestEmailBodyEscapesNames(t *testing.T) {
	t.Parallel()

	body := emailBody(survey.Meta{
		FirstName: `Jane <script>alert("x")</script>`,
		LastName:  "O'Doe & Sons",
	})

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "O&#39;Doe &amp; Sons")
}
