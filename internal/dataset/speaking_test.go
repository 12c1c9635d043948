package dataset

import "testing"

func TestParseSpeaking(t *testing.T) {
	text := "1. 你好 Nǐ hǎo\n" +
		"\n" +
		"3.  你叫什么名字？ Nǐ jiào shénme míngzi?\n" +
		"not a numbered line\n" +
		"4. 我是学生。 Wǒ shì xuésheng.\r\n"

	ds := ParseSpeaking(text)
	if ds.Kind != KindSpeakingLine {
		t.Errorf("Kind = %q", ds.Kind)
	}

	want := []SpeakingItem{
		{Term: "你好", Pronunciation: "Nǐ hǎo"},
		{Term: "你叫什么名字？", Pronunciation: "Nǐ jiào shénme míngzi"},
		{Term: "我是学生。", Pronunciation: "Wǒ shì xuésheng"},
	}
	if len(ds.Items) != len(want) {
		t.Fatalf("items = %+v, want %d", ds.Items, len(want))
	}
	for i := range want {
		if ds.Items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, ds.Items[i], want[i])
		}
	}
	if ds.Report != (Report{Input: 4, Parsed: 3, Dropped: 1}) {
		t.Errorf("Report = %+v", ds.Report)
	}
	if ds.Records[1].Term != want[1].Term || ds.Records[1].Pronunciation != want[1].Pronunciation {
		t.Errorf("record 1 = %+v", ds.Records[1])
	}
}

func TestParseSpeaking_Empty(t *testing.T) {
	ds := ParseSpeaking("")
	if ds.Len() != 0 {
		t.Errorf("Len = %d, want 0", ds.Len())
	}
}
