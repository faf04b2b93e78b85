package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumecoach/server/internal/domain"
)

const resume = "Jane Doe, 5 years backend engineering, Python and Go."

func TestAnalysisShape(t *testing.T) {
	msgs := Analysis(resume)
	require.Len(t, msgs, 2)

	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Text, "### Resume Improvement Suggestions")
	assert.Contains(t, msgs[0].Text, "### ATS Score Simulation")
	assert.Contains(t, msgs[0].Text, "### Career Coaching Insights")

	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Text, resume)
}

func TestChatReplaysHistoryInOrder(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "first question"},
		{Role: domain.RoleAssistant, Text: "first answer"},
		{Role: domain.RoleUser, Text: "second question"},
		{Role: domain.RoleAssistant, Text: "second answer"},
	}

	msgs := Chat(resume, history, "third question")
	require.Len(t, msgs, 7)

	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Text, "resume coach")

	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Text, resume)

	assert.Equal(t, history, msgs[2:6])

	assert.Equal(t, domain.RoleUser, msgs[6].Role)
	assert.Equal(t, "third question", msgs[6].Text)
}

func TestChatWithEmptyHistory(t *testing.T) {
	msgs := Chat(resume, nil, "hello")
	require.Len(t, msgs, 3)
	assert.Equal(t, "hello", msgs[2].Text)
}

func TestJobSuggestionsShape(t *testing.T) {
	msgs := JobSuggestions(resume)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Text, "3 to 5 job titles")
	assert.Contains(t, msgs[1].Text, resume)
}

func TestCoverLetterEmbedsJobRole(t *testing.T) {
	msgs := CoverLetter(resume, "Backend Engineer")
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "Backend Engineer")
	assert.Contains(t, msgs[0].Text, "250 to 300 words")
	assert.Contains(t, msgs[1].Text, resume)
}

func TestInterviewQuestionsEmbedsJobRoleAndCounts(t *testing.T) {
	msgs := InterviewQuestions(resume, "SRE")
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "SRE")
	assert.Contains(t, msgs[0].Text, "3 general questions")
	assert.Contains(t, msgs[0].Text, "4 technical questions")
	assert.Contains(t, msgs[0].Text, "3 behavioral questions")
	assert.Contains(t, msgs[0].Text, "2 questions about specific projects")
	assert.Contains(t, msgs[1].Text, resume)
}

func TestBuildersArePure(t *testing.T) {
	history := []domain.ChatMessage{{Role: domain.RoleUser, Text: "q"}}
	Chat(resume, history, "next")
	assert.Equal(t, []domain.ChatMessage{{Role: domain.RoleUser, Text: "q"}}, history)
}
