package model

// Emotion is one word of the fixed mood vocabulary.
type Emotion struct {
	Name        string
	Polarity    Polarity
	Description string
}

var goodEmotions = []Emotion{
	{"Happy", Good, "Feeling pleasure or joy about something positive."},
	{"Excited", Good, "Feeling enthusiastic or thrilled about something."},
	{"Content", Good, "A calm sense of satisfaction."},
	{"Grateful", Good, "Appreciating what you have or someone's actions."},
	{"Hopeful", Good, "Feeling positive about the future."},
	{"Proud", Good, "Feeling good about your achievements or who you are."},
	{"Joyful", Good, "A strong feeling of happiness and delight."},
	{"Peaceful", Good, "A sense of calm and quiet inside."},
	{"Inspired", Good, "Motivated by something meaningful or moving."},
	{"Confident", Good, "Believing in your abilities."},
	{"Loved", Good, "Feeling cared for and connected."},
	{"Relaxed", Good, "Free of tension or stress."},
	{"Amused", Good, "Finding something entertaining or funny."},
	{"Curious", Good, "Wanting to explore or understand more."},
	{"Motivated", Good, "Feeling ready and energized to do something."},
}

var badEmotions = []Emotion{
	{"Sad", Bad, "Feeling down or unhappy about something."},
	{"Angry", Bad, "Feeling upset or mad, often from injustice."},
	{"Frustrated", Bad, "Blocked from reaching a goal."},
	{"Anxious", Bad, "Nervous about what might happen."},
	{"Lonely", Bad, "Feeling disconnected or alone."},
	{"Guilty", Bad, "Feeling bad for something you did or didn't do."},
	{"Ashamed", Bad, "Feeling bad about who you are or how you think others see you."},
	{"Jealous", Bad, "Wishing for what someone else has."},
	{"Embarrassed", Bad, "Feeling awkward or exposed."},
	{"Bored", Bad, "Lacking interest or stimulation."},
	{"Disappointed", Bad, "Expectations weren't met."},
	{"Tired", Bad, "Lacking energy, mentally or physically."},
	{"Hopeless", Bad, "Feeling like nothing will improve."},
}

var emotionIndex = func() map[string]Emotion {
	m := make(map[string]Emotion, len(goodEmotions)+len(badEmotions))
	for _, e := range goodEmotions {
		m[e.Name] = e
	}
	for _, e := range badEmotions {
		m[e.Name] = e
	}
	return m
}()

// Emotions returns the vocabulary for one polarity, in display order.
func Emotions(p Polarity) []Emotion {
	var src []Emotion
	switch p {
	case Good:
		src = goodEmotions
	case Bad:
		src = badEmotions
	}
	out := make([]Emotion, len(src))
	copy(out, src)
	return out
}

// AllEmotions returns good emotions followed by bad ones.
func AllEmotions() []Emotion {
	return append(Emotions(Good), Emotions(Bad)...)
}

// LookupEmotion finds an emotion by exact name.
func LookupEmotion(name string) (Emotion, bool) {
	e, ok := emotionIndex[name]
	return e, ok
}
