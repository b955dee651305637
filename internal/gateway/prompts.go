package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vdtri/toeicmate/internal/model"
)

const systemPrompt = `You are an expert TOEIC instructor and examiner with deep knowledge of the TOEIC Writing and Reading test formats and official scoring criteria. Always respond with a single JSON object matching the requested schema exactly. Do not wrap the JSON in markdown fences or add commentary.`

const readingSystemPrompt = `You are an expert TOEIC Reading test author and examiner. Produce realistic TOEIC Reading content and gradings. Always respond with a single JSON object matching the requested schema exactly, without markdown fences or commentary.`

func generateWritingPrompt(topic string) string {
	var b strings.Builder
	b.WriteString("Generate one complete set of TOEIC Writing practice questions as JSON: ")
	b.WriteString(`{"questions":[{"type":"task1","content":"<JSON-encoded array of 5 scenarios {id, scenario, keywords:[2 words]}>","description":"..."},{"type":"task2","content":"<email prompt>"},{"type":"task3","content":"<opinion essay prompt>"}]}`)
	b.WriteString("\n")
	if topic != "" {
		fmt.Fprintf(&b, "Theme every question around the topic %q.\n", topic)
	}
	b.WriteString("Keep the content at realistic TOEIC difficulty.")
	return b.String()
}

func generateReadingPrompt(part int, topic string, batchNumber int) string {
	var b strings.Builder
	switch part {
	case 5:
		b.WriteString("Generate 10 TOEIC Reading Part 5 incomplete-sentence questions as JSON: ")
		b.WriteString(`{"part":5,"questions":[{"id":<int>,"sentence":"... with a blank ___","options":["(A) ...","(B) ...","(C) ...","(D) ..."],"correctAnswer":"A|B|C|D","grammarPoint":"..."}]}`)
	case 6:
		b.WriteString("Generate a full TOEIC Reading Part 6 set of 4 passages with 4 blanks each as JSON: ")
		b.WriteString(`{"part":6,"passages":[{"id":<int>,"type":"Email|Notice|Article|Memo","text":"... with numbered blanks [131]...","questions":[{"id":<int>,"blankNumber":<int>,"type":"word|sentence","options":["(A) ...","(B) ...","(C) ...","(D) ..."],"correctAnswer":"A|B|C|D"}]}]}`)
	case 7:
		b.WriteString("Generate a TOEIC Reading Part 7 batch of passages (mix single and multi-passage sets) with 2-5 questions each, around 18 questions total, as JSON: ")
		b.WriteString(`{"part":7,"passages":[{"id":<int>,"passageType":"single|double|triple","texts":["..."],"questions":[{"id":<int>,"questionText":"...","questionType":"detail|inference|purpose|vocabulary|reference","options":["(A) ...","(B) ...","(C) ...","(D) ..."],"correctAnswer":"A|B|C|D"}]}]}`)
	}
	b.WriteString("\n")
	if topic != "" {
		fmt.Fprintf(&b, "Theme the content around the topic %q.\n", topic)
	}
	if batchNumber > 0 {
		// IDs must stay unique across batches of one test so answer keys
		// remain stable while batches accumulate.
		fmt.Fprintf(&b, "This is batch %d of a larger test. Number question and passage ids starting at %d to keep them globally unique across batches.\n", batchNumber, (batchNumber-1)*100+1)
	}
	return b.String()
}

func evaluateWritingPrompt(req WritingEvaluationRequest) string {
	var b strings.Builder
	switch req.TaskType {
	case model.TaskPictureSentence:
		b.WriteString("The user answered a TOEIC Writing Task 1 (write-a-sentence) set. The scenarios shown were:\n")
		b.WriteString(req.QuestionContent)
		if len(req.Keywords) > 0 {
			fmt.Fprintf(&b, "\nRequired keywords: %s\n", strings.Join(req.Keywords, ", "))
		}
		b.WriteString("\nGrade each scenario 0-10 and respond as JSON: ")
		b.WriteString(`{"score":<0-10 average>,"overall_score":<0-50 total>,"proficiencyLevel":"Beginner|Intermediate|Advanced|Expert","feedback":"...","questions":[{"id":<int>,"score":<0-10>,"keywords_used":{"keyword1":bool,"keyword2":bool},"errors":[{"text":"...","correction":"...","explanation":"..."}],"better_version":"...","feedback":"..."}]}`)
	case model.TaskEmailResponse:
		b.WriteString("The user responded to this TOEIC Writing Task 2 email prompt:\n---\n")
		b.WriteString(req.QuestionContent)
		b.WriteString("\n---\nGrade 0-4 per official criteria and respond as JSON: ")
		b.WriteString(`{"score":<0-4>,"feedback":"...","errors":[{"text":"...","type":"grammar|vocabulary|coherence","correction":"...","explanation":"..."}],"requests_answered":{"total_requests":<int>,"answered":<int>,"missing":["..."]},"format_check":{"has_greeting":bool,"has_closing":bool,"has_signature":bool},"sample_response":"..."}`)
	case model.TaskOpinionEssay:
		b.WriteString("The user wrote a TOEIC Writing Task 3 opinion essay for this prompt:\n---\n")
		b.WriteString(req.QuestionContent)
		b.WriteString("\n---\nGrade 0-5 per official criteria and respond as JSON: ")
		b.WriteString(`{"score":<0-5>,"feedback":"...","errors":[{"text":"...","type":"grammar|vocabulary|coherence","correction":"...","explanation":"..."}],"word_count":<int>,"structure_analysis":{"has_introduction":bool,"has_body_paragraphs":bool,"has_conclusion":bool,"has_examples":bool},"sample_essay":"..."}`)
	}
	b.WriteString("\n\nUser's answer:\n---\n")
	b.WriteString(req.UserContent)
	b.WriteString("\n---")
	return b.String()
}

func evaluateReadingPrompt(req ReadingEvaluationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grade this completed TOEIC Reading Part %d test. The questions, correct answers and the user's answers follow as JSON:\n", req.Part)
	var payload []byte
	if req.Part == 5 {
		payload, _ = json.Marshal(req.Questions)
	} else {
		payload, _ = json.Marshal(req.Passages)
	}
	b.Write(payload)
	b.WriteString("\nRespond as JSON: ")
	if req.Part == 5 {
		b.WriteString(`{"totalQuestions":<int>,"correctAnswers":<int>,"score":<raw>,"scaledScore":<5-495>,"proficiencyLevel":"Beginner|Intermediate|Advanced|Expert","feedback":"...","questionResults":[{"questionId":<int>,"userAnswer":"...","correctAnswer":"...","isCorrect":bool,"explanation":"...","grammarPoint":"...","tip":"...","wrongOptions":[{"option":"...","reason":"..."}]}]}`)
	} else {
		b.WriteString(`{"totalQuestions":<int>,"correctAnswers":<int>,"score":<raw>,"scaledScore":<5-495>,"proficiencyLevel":"Beginner|Intermediate|Advanced|Expert","feedback":"...","passageResults":[{"passageId":<int>,"passageSummary":"...","questionResults":[{"questionId":<int>,"userAnswer":"...","correctAnswer":"...","isCorrect":bool,"explanation":"...","evidence":"..."}]}]}`)
	}
	return b.String()
}

func generateTranslationPrompt(level, length string, count int) string {
	return fmt.Sprintf(`Generate %d short Vietnamese passages for Vietnamese-to-English translation practice at %s level, each %s words long. Respond as JSON: {"passages":[{"id":<int>,"vietnamese":"...","topic":"...","targetVocabulary":[{"vietnamese":"...","english":"...","explanation":"..."}]}]}`, count, level, length)
}

func evaluateTranslationPrompt(req TranslationEvaluationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate this Vietnamese-to-English translation by a %s level learner.\n\nVietnamese passage:\n---\n%s\n---\n\nUser's translation:\n---\n%s\n---\n", req.ProficiencyLevel, req.VietnamesePassage, req.UserTranslation)
	if len(req.TargetVocabulary) > 0 {
		vocab, _ := json.Marshal(req.TargetVocabulary)
		fmt.Fprintf(&b, "\nTarget vocabulary the learner should have used: %s\n", vocab)
	}
	b.WriteString("\nScore each axis 0-25 (total 0-100) and respond as JSON: ")
	b.WriteString(`{"score":<0-100>,"feedback":"...","accuracy":{"score":<0-25>,"comment":"..."},"grammar":{"score":<0-25>,"errors":[{"text":"...","correction":"...","explanation":"..."}]},"vocabulary":{"score":<0-25>,"issues":[{"text":"...","suggestion":"...","explanation":"..."}],"newWords":[{"vietnamese":"...","english":"...","context":"..."}]},"naturalness":{"score":<0-25>,"comment":"..."},"better_version":"...","suggestions":["..."]}`)
	return b.String()
}

func analyzeProgressPrompt(historyJSON string) string {
	var b strings.Builder
	b.WriteString("Analyze this learner's recent TOEIC practice history and summarize their progress. History as JSON:\n")
	b.WriteString(historyJSON)
	b.WriteString("\nRespond as JSON: ")
	b.WriteString(`{"trend":"improving|declining|stable|mixed","summary":"...","level":"A1|A2|B1|B2|C1|C2","strengths":["..."],"weaknesses":["..."],"advice":"..."}`)
	return b.String()
}
