package driver

import (
	"encoding/json"
	"fmt"

	"patc/internal/diag"
	"patc/internal/observ"
	"patc/internal/source"
)

type timingPayload struct {
	Kind    string `json:"kind"`
	Pattern string `json:"pattern,omitempty"`
	observ.Report
}

func appendTimingDiagnostic(bag *diag.Bag, pattern source.PatternID, payload timingPayload) {
	at := source.Span{Pattern: pattern}
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.3f ms", payload.Kind, payload.TotalMS)
	if payload.Pattern != "" {
		msg = fmt.Sprintf("%s, pattern %s", msg, payload.Pattern)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  at,
		Notes: []diag.Note{
			{Span: at, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	// тайминги не должны теряться из-за лимита диагностик
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
