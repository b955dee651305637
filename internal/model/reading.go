package model

import "encoding/json"

// ReadingQuestion is one multiple-choice item of a reading test. Which of the
// optional fields are set depends on the part: Sentence/GrammarPoint for part
// 5, BlankNumber/Kind for part 6, QuestionText/QuestionType for part 7.
type ReadingQuestion struct {
	ID            int      `json:"id"`
	Sentence      string   `json:"sentence,omitempty"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	GrammarPoint  string   `json:"grammarPoint,omitempty"`
	QuestionText  string   `json:"questionText,omitempty"`
	QuestionType  string   `json:"questionType,omitempty"` // detail, inference, purpose, vocabulary, reference
	BlankNumber   int      `json:"blankNumber,omitempty"`
	Kind          string   `json:"type,omitempty"` // part 6: word or sentence
}

// ReadingPassage groups the questions of parts 6 and 7 under their text(s).
type ReadingPassage struct {
	ID          int               `json:"id"`
	Type        string            `json:"type,omitempty"` // Email, Notice, Article, ...
	Text        string            `json:"text,omitempty"`
	Texts       []string          `json:"texts,omitempty"`       // part 7 multi-passage sets
	PassageType string            `json:"passageType,omitempty"` // single, double, triple
	Questions   []ReadingQuestion `json:"questions"`
}

// ReadingBatch is the result of one generation round as returned by the
// gateway. Passage is a legacy single-passage shape some responses still use
// for part 6.
type ReadingBatch struct {
	Part        int               `json:"part"`
	BatchNumber int               `json:"batchNumber,omitempty"`
	Questions   []ReadingQuestion `json:"questions,omitempty"`
	Passage     *ReadingPassage   `json:"passage,omitempty"`
	Passages    []ReadingPassage  `json:"passages,omitempty"`
}

// WorkingTest is the in-memory accumulation of generated reading content for
// one test. It is never persisted directly; a snapshot of it becomes the
// Attempt's QuestionContent once the test is graded.
type WorkingTest struct {
	Part      int               `json:"part"`
	Questions []ReadingQuestion `json:"questions,omitempty"` // part 5
	Passages  []ReadingPassage  `json:"passages,omitempty"`  // parts 6 and 7
}

// Merge appends one round's content. It never replaces previously accumulated
// items, and it does not renumber: the gateway guarantees IDs unique across
// rounds of the same test, which keeps user answer keys stable as batches
// arrive.
func (t *WorkingTest) Merge(batch *ReadingBatch) {
	if batch == nil {
		return
	}
	t.Questions = append(t.Questions, batch.Questions...)
	t.Passages = append(t.Passages, batch.Passages...)
	if batch.Passage != nil && len(batch.Passages) == 0 {
		t.Passages = append(t.Passages, *batch.Passage)
	}
}

// QuestionCount counts every question across the flat list and all passages.
func (t *WorkingTest) QuestionCount() int {
	n := len(t.Questions)
	for _, p := range t.Passages {
		n += len(p.Questions)
	}
	return n
}

// Clone returns a deep-enough copy safe to hand to progress subscribers while
// the accumulator keeps appending to the original.
func (t *WorkingTest) Clone() *WorkingTest {
	c := &WorkingTest{Part: t.Part}
	c.Questions = append(c.Questions, t.Questions...)
	c.Passages = append(c.Passages, t.Passages...)
	return c
}

// Snapshot serializes the test for storage as an Attempt's QuestionContent.
func (t *WorkingTest) Snapshot() (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseWorkingTest restores a snapshot produced by Snapshot.
func ParseWorkingTest(snapshot string) (*WorkingTest, error) {
	var t WorkingTest
	if err := json.Unmarshal([]byte(snapshot), &t); err != nil {
		return nil, err
	}
	return &t, nil
}
