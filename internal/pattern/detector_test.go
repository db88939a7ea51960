package pattern

import "testing"

func TestDetectEmptyChunk(t *testing.T) {
	for _, chunk := range []string{"", "   ", "\n\t"} {
		if f := Detect(chunk); f.Any() {
			t.Fatalf("expected no flags for %q, got %+v", chunk, f)
		}
	}
}

func TestDetectRevisionWithUncertainty(t *testing.T) {
	f := Detect("Well, maybe we should reconsider.")
	if !f.Uncertainty {
		t.Fatal("expected uncertainty from 'maybe'")
	}
	if !f.Revision {
		t.Fatal("expected revision from 'reconsider'")
	}
	if f.Question || f.Certainty || f.Resolution {
		t.Fatalf("unexpected flags: %+v", f)
	}
}

func TestDetectEnumerationAndCausation(t *testing.T) {
	f := Detect("First, because the set is finite, therefore it converges.")
	if !f.Enumeration {
		t.Fatal("expected enumeration from 'First'")
	}
	if !f.Causation {
		t.Fatal("expected causation from 'because'/'therefore'")
	}
	if f.Revision || f.Uncertainty {
		t.Fatalf("unexpected flags: %+v", f)
	}
}

func TestDetectQuestionAndEmphasis(t *testing.T) {
	f := Detect("Is this really necessary?")
	if !f.Question {
		t.Fatal("expected question from '?'")
	}
	if !f.Emphasis {
		t.Fatal("expected emphasis from 'really'")
	}
}

func TestDetectQuestionIsOnlyPunctuationFlag(t *testing.T) {
	f := Detect("That settles it!")
	if f.Emphasis {
		t.Fatal("exclamation marks must not set emphasis")
	}
	if !Detect("oh?").Question {
		t.Fatal("question mark must set question")
	}
}

func TestDetectWordBoundaries(t *testing.T) {
	// "snot" must not trigger negation, "threnody" must not trigger "then".
	f := Detect("the snot-nosed threnody")
	if f.Negation {
		t.Fatal("negation must respect word boundaries")
	}
	if f.Enumeration {
		t.Fatal("enumeration must respect word boundaries")
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	if f := Detect("CLEARLY this holds"); !f.Certainty {
		t.Fatal("expected certainty regardless of case")
	}
	if f := Detect("Maybe so"); !f.Uncertainty {
		t.Fatal("expected uncertainty regardless of case")
	}
}

func TestDetectDeterministic(t *testing.T) {
	chunk := "Actually, wait: this is not right, so we conclude otherwise?"
	first := Detect(chunk)
	for i := 0; i < 50; i++ {
		if got := Detect(chunk); got != first {
			t.Fatalf("detection diverged on call %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestDominantPrecedence(t *testing.T) {
	cases := []struct {
		chunk string
		want  Category
	}{
		{"Wait, maybe this is wrong", CategoryRevision},
		{"In summary, it clearly holds", CategoryResolution},
		{"Clearly, maybe", CategoryCertainty},
		{"Maybe, because of this", CategoryUncertainty},
		{"First, then second", CategoryEnumeration},
		{"plain text with nothing notable", CategoryNeutral},
	}
	for _, c := range cases {
		if got := Dominant(Detect(c.chunk)); got != c.want {
			t.Fatalf("Dominant(%q) = %s, want %s", c.chunk, got, c.want)
		}
	}
}
