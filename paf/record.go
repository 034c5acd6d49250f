// Package paf implements the typed PAF (pairwise mapping format) record
// produced by the minimap2 facade (spec §4.5) and its exact text codec.
//
// There is no PAF-specific library anywhere in the reference corpus, so the
// encoder/decoder here is hand-written in the same manual, line-oriented
// style as the teacher's encoding/fastq writer.
package paf

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Record is one PAF mapping line: a query read mapped against a target
// read, plus minimap2's typed tags.
type Record struct {
	QueryName   string
	QueryLen    int
	QueryStart  int
	QueryEnd    int
	Strand      byte // '+' or '-'
	TargetName  string
	TargetLen   int
	TargetStart int
	TargetEnd   int
	MatchLen    int
	BlockLen    int
	MapQ        int // 0-255, 255 = missing

	Tp byte    // P, S, I, i
	Cm int     // chain minimizers
	S1 int     // chaining score
	Dv float32 // per-base divergence
	Rl int     // repetitive-seed query length
}

// Encode writes the record as one tab-separated PAF line, without a
// trailing newline, in the fixed tag order tp, cm, s1, dv, rl (spec §4.5).
func (r Record) Encode() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d\t%d\t%d\t%c\t%s\t%d\t%d\t%d\t%d\t%d\t%d",
		r.QueryName, r.QueryLen, r.QueryStart, r.QueryEnd, r.Strand,
		r.TargetName, r.TargetLen, r.TargetStart, r.TargetEnd,
		r.MatchLen, r.BlockLen, r.MapQ)
	fmt.Fprintf(&b, "\ttp:A:%c", r.Tp)
	fmt.Fprintf(&b, "\tcm:i:%d", r.Cm)
	fmt.Fprintf(&b, "\ts1:i:%d", r.S1)
	fmt.Fprintf(&b, "\tdv:f:%s", formatDv(r.Dv))
	fmt.Fprintf(&b, "\trl:i:%d", r.Rl)
	return b.String()
}

// formatDv renders dv with four decimal places, except for exactly zero
// which is rendered as the bare literal "0" (spec §4.5, testable property
// "dv rendering").
func formatDv(dv float32) string {
	if dv == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(dv), 'f', 4, 32)
}

// WriteTo writes the record followed by a newline to w.
func (r Record) WriteTo(w *bufio.Writer) error {
	if _, err := w.WriteString(r.Encode()); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// Decode parses one tab-separated PAF line into a Record. It accepts
// exactly the grammar Encode produces (spec §4.5, "decoder accepts the same
// grammar and reconstructs an equal record").
func Decode(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 17 {
		return Record{}, fmt.Errorf("paf: expected 17 fields, got %d: %q", len(fields), line)
	}

	var r Record
	r.QueryName = fields[0]
	var err error
	if r.QueryLen, err = strconv.Atoi(fields[1]); err != nil {
		return Record{}, fmt.Errorf("paf: query length: %w", err)
	}
	if r.QueryStart, err = strconv.Atoi(fields[2]); err != nil {
		return Record{}, fmt.Errorf("paf: query start: %w", err)
	}
	if r.QueryEnd, err = strconv.Atoi(fields[3]); err != nil {
		return Record{}, fmt.Errorf("paf: query end: %w", err)
	}
	if len(fields[4]) != 1 {
		return Record{}, fmt.Errorf("paf: invalid strand: %q", fields[4])
	}
	r.Strand = fields[4][0]
	r.TargetName = fields[5]
	if r.TargetLen, err = strconv.Atoi(fields[6]); err != nil {
		return Record{}, fmt.Errorf("paf: target length: %w", err)
	}
	if r.TargetStart, err = strconv.Atoi(fields[7]); err != nil {
		return Record{}, fmt.Errorf("paf: target start: %w", err)
	}
	if r.TargetEnd, err = strconv.Atoi(fields[8]); err != nil {
		return Record{}, fmt.Errorf("paf: target end: %w", err)
	}
	if r.MatchLen, err = strconv.Atoi(fields[9]); err != nil {
		return Record{}, fmt.Errorf("paf: match length: %w", err)
	}
	if r.BlockLen, err = strconv.Atoi(fields[10]); err != nil {
		return Record{}, fmt.Errorf("paf: block length: %w", err)
	}
	if r.MapQ, err = strconv.Atoi(fields[11]); err != nil {
		return Record{}, fmt.Errorf("paf: mapq: %w", err)
	}

	for _, tag := range fields[12:] {
		parts := strings.SplitN(tag, ":", 3)
		if len(parts) != 3 {
			return Record{}, fmt.Errorf("paf: invalid tag: %q", tag)
		}
		name, val := parts[0], parts[2]
		switch name {
		case "tp":
			if len(val) != 1 {
				return Record{}, fmt.Errorf("paf: invalid tp tag: %q", tag)
			}
			r.Tp = val[0]
		case "cm":
			if r.Cm, err = strconv.Atoi(val); err != nil {
				return Record{}, fmt.Errorf("paf: cm tag: %w", err)
			}
		case "s1":
			if r.S1, err = strconv.Atoi(val); err != nil {
				return Record{}, fmt.Errorf("paf: s1 tag: %w", err)
			}
		case "dv":
			f, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return Record{}, fmt.Errorf("paf: dv tag: %w", err)
			}
			r.Dv = float32(f)
		case "rl":
			if r.Rl, err = strconv.Atoi(val); err != nil {
				return Record{}, fmt.Errorf("paf: rl tag: %w", err)
			}
		default:
			return Record{}, fmt.Errorf("paf: unknown tag: %q", tag)
		}
	}

	return r, nil
}
