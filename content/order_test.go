package content

import "testing"

func TestListSortAscending(t *testing.T) {
	l := List{
		Text(3, "c"),
		Text(1, "a"),
		Text(2, "b"),
	}
	l.Sort()

	for i, want := range []float64{1, 2, 3} {
		if l[i].Key != want {
			t.Errorf("l[%d].Key = %v, want %v", i, l[i].Key, want)
		}
	}
}

func TestListSortStableOnDuplicateKeys(t *testing.T) {
	// Duplicate keys are not produced by extractors, but when they
	// occur the sort must preserve insertion order.
	l := List{
		Text(1, "first"),
		Text(1, "second"),
		Text(0, "zeroth"),
		Text(1, "third"),
	}
	l.Sort()

	want := []string{"zeroth", "first", "second", "third"}
	for i, w := range want {
		if l[i].Payload != w {
			t.Errorf("l[%d].Payload = %q, want %q", i, l[i].Payload, w)
		}
	}
}

func TestListSortedLeavesReceiverUntouched(t *testing.T) {
	l := List{Text(2, "b"), Text(1, "a")}
	sorted := l.Sorted()

	if l[0].Key != 2 {
		t.Error("Sorted() mutated the receiver")
	}
	if sorted[0].Key != 1 || sorted[1].Key != 2 {
		t.Errorf("Sorted() = %+v, not ascending", sorted)
	}
}

func TestAttachOCRFractionalInsertion(t *testing.T) {
	// Inserting an OCR result at key 2.5 between an image at 2 and
	// text at 3 yields [2, 2.5, 3] with nothing else reordered.
	l := List{
		Text(1, "before"),
		Image(2, "/tmp/fig.png"),
		Text(3, "after"),
	}

	if !l.AttachOCR(2, "figure text") {
		t.Fatal("AttachOCR returned false for non-blank text")
	}
	l.Sort()

	wantKeys := []float64{1, 2, 2.5, 3}
	if len(l) != len(wantKeys) {
		t.Fatalf("len = %d, want %d", len(l), len(wantKeys))
	}
	for i, w := range wantKeys {
		if l[i].Key != w {
			t.Errorf("l[%d].Key = %v, want %v", i, l[i].Key, w)
		}
	}
	if l[2].Kind != KindOCRResult || l[2].Payload != "figure text" {
		t.Errorf("spliced item = %+v", l[2])
	}
}

func TestAttachOCRSkipsBlankText(t *testing.T) {
	l := List{Image(0, "/tmp/fig.png")}

	for _, text := range []string{"", "   ", "\n\t"} {
		if l.AttachOCR(0, text) {
			t.Errorf("AttachOCR(%q) = true, want false", text)
		}
	}
	if len(l) != 1 {
		t.Errorf("blank OCR text was attached, len = %d", len(l))
	}
}

func TestNextKey(t *testing.T) {
	tests := []struct {
		name string
		list List
		want float64
	}{
		{"empty", List{}, 0},
		{"single", List{Text(0, "a")}, 1},
		{"gap", List{Text(0, "a"), Text(5, "b")}, 6},
		{"fractional ignored", List{Image(2, "p"), OCRResult(2.5, "t")}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.NextKey(); got != tt.want {
				t.Errorf("NextKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
