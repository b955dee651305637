package model

// TaskType identifies one practice family. The string values are stable: they
// are stored on Attempt records and used as query keys by the view layer.
type TaskType string

const (
	TaskPictureSentence TaskType = "task1"
	TaskEmailResponse   TaskType = "task2"
	TaskOpinionEssay    TaskType = "task3"
	TaskReadingPart5    TaskType = "part5"
	TaskReadingPart6    TaskType = "part6"
	TaskReadingPart7    TaskType = "part7"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskPictureSentence, TaskEmailResponse, TaskOpinionEssay,
		TaskReadingPart5, TaskReadingPart6, TaskReadingPart7:
		return true
	}
	return false
}

// IsWriting reports whether the task belongs to the writing family (the only
// types a library Question may carry).
func (t TaskType) IsWriting() bool {
	switch t {
	case TaskPictureSentence, TaskEmailResponse, TaskOpinionEssay:
		return true
	}
	return false
}

func (t TaskType) IsReading() bool {
	switch t {
	case TaskReadingPart5, TaskReadingPart6, TaskReadingPart7:
		return true
	}
	return false
}

// ReadingPart maps a reading task type to its TOEIC part number (5, 6 or 7).
// Returns 0 for non-reading types.
func (t TaskType) ReadingPart() int {
	switch t {
	case TaskReadingPart5:
		return 5
	case TaskReadingPart6:
		return 6
	case TaskReadingPart7:
		return 7
	}
	return 0
}

// ReadingTaskType is the inverse of ReadingPart.
func ReadingTaskType(part int) TaskType {
	switch part {
	case 5:
		return TaskReadingPart5
	case 6:
		return TaskReadingPart6
	case 7:
		return TaskReadingPart7
	}
	return ""
}

// QuestionLevel is the proficiency bucket attached to library questions.
type QuestionLevel string

const (
	LevelBasic        QuestionLevel = "basic"
	LevelIntermediate QuestionLevel = "intermediate"
	LevelAdvanced     QuestionLevel = "advanced"
)

func (l QuestionLevel) Valid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
