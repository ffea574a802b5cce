package pcap

// RecordHeaderSize is the fixed size, in bytes, of a per-record header
// (spec §4.3, §6): four 32-bit fields.
const RecordHeaderSize = 16

// RecordHeader is the fixed-size header preceding every captured frame
// (spec §3). Every field is read in the byte order recorded on FileHeader
// (the Swapped flag is copied verbatim, per the file-wide invariant in
// spec §3).
type RecordHeader struct {
	// TimestampSec is the capture timestamp, seconds component.
	TimestampSec uint32
	// TimestampFrac is the capture timestamp's sub-second component, in
	// micro- or nanoseconds depending on the file's flavour (not
	// distinguished by this decoder; spec §3 notes this as a per-file
	// detail the caller is expected to already know).
	TimestampFrac uint32
	// CapturedLen is the number of octets actually captured and stored
	// for this record.
	CapturedLen uint32
	// OriginalLen is the frame's length on the wire before any
	// snap-length truncation.
	OriginalLen uint32
	// Swapped records the file-wide byte order this header was decoded
	// with.
	Swapped bool
}

// Record is one captured frame: its header and the captured payload bytes
// (spec §3). len(Payload) == Header.CapturedLen always holds for records
// produced by Framer.
type Record struct {
	Header  RecordHeader
	Payload []byte
}

// framerState names the two states of the record-framing machine
// (spec §4.3).
type framerState uint8

const (
	stateHeader framerState = iota
	stateBody
)

// Framer is a two-state streaming state machine that splits the remainder
// of a capture file (everything after the 24-byte FileHeader) into a
// sequence of Records (spec §4.3). Feed it bytes one at a time with
// FeedByte, or hand it a whole buffer with ParseRecords.
//
// A trailing partial record — a header or body that never receives enough
// bytes to complete — is silently dropped, per spec §4.3 and §7; callers
// that need to know whether this happened can check Truncated after
// feeding is complete. When bytes are fed with FeedByte alone, a record
// whose last byte is the final byte fed stays pending (and Truncated
// reports true) until another byte arrives; ParseRecords emits such a
// record at the end of its input.
type Framer struct {
	swapped bool
	state   framerState

	headerScratch [RecordHeaderSize]byte
	headerPos     int

	pendingHeader RecordHeader
	bodyBudget    uint32
	payload       []byte
	bodyPos       int

	records []Record
}

// NewFramer returns a Framer that interprets record-header fields using
// swapped byte order (normally FileHeader.IsSwapped()).
func NewFramer(swapped bool) *Framer {
	return &Framer{swapped: swapped}
}

// FeedByte advances the state machine by one input octet. The transition
// predicate for the current state is evaluated before b is placed, so the
// final byte of a header or body triggers the transition on the next call
// (spec §4.3).
func (f *Framer) FeedByte(b byte) {
	switch f.state {
	case stateHeader:
		if f.headerPos == RecordHeaderSize {
			f.completeHeader()
		}
		if f.state == stateHeader {
			f.headerScratch[f.headerPos] = b
			f.headerPos++
			return
		}
		// Fell through to Body this call; re-dispatch under the new state.
		f.FeedByte(b)
	case stateBody:
		if f.bodyPos == int(f.bodyBudget) {
			f.completeBody()
		}
		if f.state == stateBody {
			f.payload = append(f.payload, b)
			f.bodyPos++
			return
		}
		f.FeedByte(b)
	}
}

// completeHeader builds a RecordHeader from the accumulated header scratch
// and transitions to the Body state.
func (f *Framer) completeHeader() {
	buf := f.headerScratch[:]
	f.pendingHeader = RecordHeader{
		TimestampSec:  Combine4(buf[0], buf[1], buf[2], buf[3], f.swapped),
		TimestampFrac: Combine4(buf[4], buf[5], buf[6], buf[7], f.swapped),
		CapturedLen:   Combine4(buf[8], buf[9], buf[10], buf[11], f.swapped),
		OriginalLen:   Combine4(buf[12], buf[13], buf[14], buf[15], f.swapped),
		Swapped:       f.swapped,
	}
	f.bodyBudget = f.pendingHeader.CapturedLen
	f.payload = make([]byte, 0, f.bodyBudget)
	f.bodyPos = 0
	f.headerPos = 0
	f.state = stateBody
}

// completeBody emits a Record from the stored header and payload, and
// transitions back to the Header state.
func (f *Framer) completeBody() {
	payload := make([]byte, len(f.payload))
	copy(payload, f.payload)
	f.records = append(f.records, Record{Header: f.pendingHeader, Payload: payload})

	f.payload = nil
	f.headerPos = 0
	f.state = stateHeader
}

// Records returns every Record completed so far, in capture order.
func (f *Framer) Records() []Record {
	return f.records
}

// Truncated reports whether the framer currently holds a partial header
// or partial body that will never complete — i.e. the input ended
// mid-record. Per spec §4.3/§7 this is not an error; it is silently
// dropped from Records.
func (f *Framer) Truncated() bool {
	switch f.state {
	case stateHeader:
		return f.headerPos != 0
	case stateBody:
		return true
	default:
		return false
	}
}

// ParseRecords feeds all of data through a fresh Framer and returns the
// completed records along with whether a trailing partial record was
// dropped. data should be the portion of a capture file following the
// 24-byte FileHeader (spec §6).
func ParseRecords(data []byte, swapped bool) (records []Record, truncated bool) {
	f := NewFramer(swapped)
	for _, b := range data {
		f.FeedByte(b)
	}
	// FeedByte only checks a state's transition predicate on the following
	// byte, so a record completed by the final input byte is still pending
	// here: emit it now.
	if f.state == stateHeader && f.headerPos == RecordHeaderSize {
		f.completeHeader()
	}
	if f.state == stateBody && f.bodyPos == int(f.bodyBudget) {
		f.completeBody()
	}
	return f.Records(), f.Truncated()
}
