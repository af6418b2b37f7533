package content

import "sort"

// OCRKeyOffset is the fractional offset used to splice an OCR result
// in directly after its source image. Extractors assign integer keys,
// so key+0.5 always lands strictly between the image and whatever
// follows it.
const OCRKeyOffset = 0.5

// List is an ordered sequence of content items. An extractor builds
// one per document; OCR results are then spliced in once, and the
// result is treated as read-only by the merge step.
type List []Item

// Sort orders the list by ascending key. The sort is stable: items
// with equal keys keep their relative insertion order. Duplicate keys
// are not expected from extractors, but must not be reordered when
// they occur.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Key < l[j].Key
	})
}

// Sorted returns a sorted copy, leaving the receiver untouched.
func (l List) Sorted() List {
	out := make(List, len(l))
	copy(out, l)
	out.Sort()
	return out
}

// Append adds an item to the list.
func (l *List) Append(it Item) {
	*l = append(*l, it)
}

// AttachOCR splices recognized text for the image at imageKey into the
// list at imageKey+OCRKeyOffset. Blank text is not attached; an image
// without an OCR result is a legal state the merge step handles with a
// placeholder. Reports whether an item was added.
func (l *List) AttachOCR(imageKey float64, text string) bool {
	if (Item{Payload: text}).IsBlank() {
		return false
	}
	l.Append(OCRResult(imageKey+OCRKeyOffset, text))
	return true
}

// NextKey returns the next integer ordering key for an extractor pass:
// one past the largest integer key already present, or 0 for an empty
// list. Fractional keys from spliced OCR results are ignored.
func (l List) NextKey() float64 {
	next := 0.0
	for _, it := range l {
		k := float64(int64(it.Key)) + 1
		if k > next {
			next = k
		}
	}
	return next
}
