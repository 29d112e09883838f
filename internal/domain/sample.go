package domain

import "time"

// SampleQuizTitle is the title of the quiz seeded on first run.
const SampleQuizTitle = "General Knowledge - Sample"

type sampleQuestion struct {
	text    string
	options [OptionsPerQuestion]string
	correct string
}

var sampleQuestions = []sampleQuestion{
	{"What is the capital of France?", [4]string{"Paris", "Berlin", "Madrid", "Rome"}, "o1"},
	{"Which language runs in a web browser?", [4]string{"Python", "JavaScript", "C++", "Java"}, "o2"},
	{"What planet is known as the Red Planet?", [4]string{"Earth", "Mars", "Jupiter", "Venus"}, "o2"},
	{"Which gas do plants absorb from the atmosphere?", [4]string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"}, "o3"},
	{"Who wrote 'Romeo and Juliet'?", [4]string{"William Shakespeare", "Charles Dickens", "Mark Twain", "Jane Austen"}, "o1"},
}

// SampleQuizzes returns the built-in collection used when nothing is stored yet.
// Option ids are fixed (o1..o4) within each question.
func SampleQuizzes(ids IDGenerator, now time.Time) []Quiz {
	questions := make([]Question, 0, len(sampleQuestions))
	for _, sq := range sampleQuestions {
		options := make([]Option, OptionsPerQuestion)
		for i, text := range sq.options {
			options[i] = Option{ID: "o" + string(rune('1'+i)), Text: text}
		}
		q, err := NewQuestion(ids.NewID(PrefixQuestion), sq.text, options, sq.correct)
		if err != nil {
			panic("domain: invalid sample question: " + err.Error())
		}
		questions = append(questions, q)
	}
	return []Quiz{{
		ID:        ids.NewID(PrefixQuiz),
		Title:     SampleQuizTitle,
		CreatedAt: now,
		Questions: questions,
	}}
}
