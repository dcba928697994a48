package web

import (
	"golang.org/x/text/message"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/state"
)

type resultJSON struct {
	Comment    string  `json:"comment"`
	Rating     float64 `json:"rating"`
	ProductID  int64   `json:"product_id"`
	Similarity float64 `json:"similarity"`
}

type errorJSON struct {
	Kind       string `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

type stateJSON struct {
	Query     string       `json:"query"`
	Loading   bool         `json:"loading"`
	Seq       uint64       `json:"seq"`
	Region    string       `json:"region"`
	CanSubmit bool         `json:"can_submit"`
	Error     *errorJSON   `json:"error"`
	Results   []resultJSON `json:"results"`
}

func stateToJSON(st state.State, p *message.Printer) stateJSON {
	out := stateJSON{
		Query:     st.Query,
		Loading:   st.Loading,
		Seq:       st.Seq,
		Region:    st.MainRegion().String(),
		CanSubmit: st.CanSubmit(),
		Results:   make([]resultJSON, len(st.Results)),
	}
	if st.ShowError() {
		out.Error = &errorJSON{
			Kind:       string(st.Err.Kind),
			StatusCode: st.Err.StatusCode,
			Message:    p.Sprintf(st.Err.MessageKey()),
		}
	}
	for i, r := range st.Results {
		out.Results[i] = resultJSON{
			Comment:    r.Comment(),
			Rating:     r.Rating(),
			ProductID:  r.ProductID(),
			Similarity: r.Similarity(),
		}
	}
	return out
}
