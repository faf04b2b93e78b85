// Package prompt assembles the ordered message lists sent to the model.
// Every builder is a pure function of session state plus request
// parameters: a fixed system message, a grounding message carrying the
// résumé text, and whatever conversational turns the interaction needs.
package prompt

import (
	"fmt"

	"github.com/resumecoach/server/internal/domain"
)

const analysisSystem = `You are an expert resume analyst. Analyze the provided resume and respond with exactly three sections, each introduced by a level-3 markdown heading (###):

### Resume Improvement Suggestions
Concrete, actionable feedback on content, structure and wording, with examples drawn from the resume.

### ATS Score Simulation
Simulate how an applicant tracking system would score this resume out of 100, explain the score, and list the keywords or sections that raised or lowered it.

### Career Coaching Insights
Advice on positioning, skill gaps and next career steps based on the candidate's background.

Be constructive, specific and professional. Do not add sections beyond these three.`

const coachSystem = `You are a professional resume coach. Give concise, actionable advice tailored to the provided resume. Always reference the resume content and suggest improvements with examples.`

const jobSuggestionsSystem = `You are a career advisor. Based on the provided resume, suggest 3 to 5 job titles the candidate is well suited for. For each title give a short justification grounded in the candidate's experience and skills. Format the answer as a list.`

const interviewQuestionsTemplate = `You are an experienced interviewer preparing a candidate for a %s position. Based on the provided resume, produce interview questions in four categories: 3 general questions, 4 technical questions, 3 behavioral questions, and 2 questions about specific projects mentioned in the resume. Label each category with a heading.`

const coverLetterTemplate = `You are a professional cover letter writer. Using the provided resume, write a cover letter for a %s position. Structure it as an opening paragraph expressing interest, one or two body paragraphs connecting the candidate's experience to the role, and a closing paragraph with a call to action. Target 250 to 300 words. Do not invent experience that is not in the resume.`

// resumeContext injects the full document text so replies stay anchored to
// the specific résumé.
func resumeContext(resumeText string) domain.ChatMessage {
	return domain.ChatMessage{
		Role: domain.RoleUser,
		Text: fmt.Sprintf("Here is the resume I'm working on:\n\n%s\n\nPlease keep this context in mind.", resumeText),
	}
}

// Analysis builds the initial-critique message list.
func Analysis(resumeText string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Text: analysisSystem},
		{Role: domain.RoleUser, Text: fmt.Sprintf("Please analyze this resume and provide detailed feedback:\n\n%s", resumeText)},
	}
}

// Chat builds a chat-turn message list: coach persona, résumé grounding,
// prior history oldest first, then the current user utterance.
func Chat(resumeText string, history []domain.ChatMessage, userMessage string) []domain.ChatMessage {
	msgs := make([]domain.ChatMessage, 0, len(history)+3)
	msgs = append(msgs,
		domain.ChatMessage{Role: domain.RoleSystem, Text: coachSystem},
		resumeContext(resumeText),
	)
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.ChatMessage{Role: domain.RoleUser, Text: userMessage})
	return msgs
}

// JobSuggestions builds the job-title suggestion message list.
func JobSuggestions(resumeText string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Text: jobSuggestionsSystem},
		resumeContext(resumeText),
	}
}

// CoverLetter builds the cover-letter message list for the given role.
func CoverLetter(resumeText, jobRole string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Text: fmt.Sprintf(coverLetterTemplate, jobRole)},
		resumeContext(resumeText),
	}
}

// InterviewQuestions builds the interview-prep message list for the given role.
func InterviewQuestions(resumeText, jobRole string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Text: fmt.Sprintf(interviewQuestionsTemplate, jobRole)},
		resumeContext(resumeText),
	}
}
