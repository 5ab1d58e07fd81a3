package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/couchcryptid/parksafe-la/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, newPageData(formFields{}))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		s.predictJSON(w, r)
		return
	}
	s.predictForm(w, r)
}

func (s *Server) predictForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{Days: domain.DaysOfWeek, Hours: hours, Error: "Could not read the form."})
		return
	}
	f := formFields{
		Zipcode:   r.PostFormValue("zipcode"),
		DayOfWeek: r.PostFormValue("day_of_week"),
		Hour:      r.PostFormValue("hour"),
		AmPm:      r.PostFormValue("am_pm"),
	}
	data := newPageData(f)

	in, err := coerce(f)
	if err != nil {
		data.Error = err.Error()
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	p, err := s.predictor.Predict(r.Context(), in)
	if err != nil {
		status := statusFor(err)
		s.logPredictError(err, status)
		data.Error = err.Error()
		s.renderPage(w, status, data)
		return
	}

	data.Result = &p
	s.renderPage(w, http.StatusOK, data)
}

func (s *Server) predictJSON(w http.ResponseWriter, r *http.Request) {
	var body jsonFields
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return
	}
	f, err := body.fields()
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	in, err := coerce(f)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := s.predictor.Predict(r.Context(), in)
	if err != nil {
		status := statusFor(err)
		s.logPredictError(err, status)
		sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, p)
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) logPredictError(err error, status int) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("prediction failed", "error", err)
		return
	}
	s.logger.Info("prediction rejected", "error", err)
}
