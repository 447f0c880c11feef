package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 85.0, Mark{Score: 85, MaxScore: 100}.Percentage(), 0.001)
	assert.InDelta(t, 50.0, Mark{Score: 25, MaxScore: 50}.Percentage(), 0.001)
	assert.Equal(t, 0.0, Mark{Score: 10, MaxScore: 0}.Percentage())
}

func TestValidExamType(t *testing.T) {
	for _, examType := range []string{ExamMidterm, ExamFinal, ExamQuiz, ExamAssignment, ExamPractical} {
		assert.True(t, ValidExamType(examType), examType)
	}
	assert.False(t, ValidExamType("viva"))
	assert.False(t, ValidExamType(""))
}
