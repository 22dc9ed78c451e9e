package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"CardDesk/internal/desk"
	"CardDesk/internal/model"
	"CardDesk/internal/recorder"
	"CardDesk/internal/settings"
)

type handlers struct {
	desk     *desk.Manager
	settings *settings.Manager
	recorder recorder.Recorder
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) getSettings(w http.ResponseWriter, _ *http.Request) {
	s := h.settings.Get()
	writeJSON(w, http.StatusOK, s)
}

func (h *handlers) updateSettings(w http.ResponseWriter, r *http.Request) {
	var s model.DeskSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings payload: "+err.Error())
		return
	}
	if err := h.settings.Update(s); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.settings.Get())
}

func (h *handlers) openSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BuyerContactID string `json:"buyer_contact_id"`
	}
	if r.Body != nil {
		// Body is optional; a bare POST opens an anonymous session.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	sess := h.desk.OpenSession(req.BuyerContactID)
	writeJSON(w, http.StatusCreated, sess)
}

func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.desk.GetSession(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *handlers) addScan(w http.ResponseWriter, r *http.Request) {
	var card model.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		writeError(w, http.StatusBadRequest, "invalid card payload: "+err.Error())
		return
	}
	if card.CertNumber == "" {
		writeError(w, http.StatusBadRequest, "cert_number is required")
		return
	}

	scan, err := h.desk.AddScan(mux.Vars(r)["id"], card)
	switch {
	case err == desk.ErrSessionNotFound:
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err == desk.ErrSessionClosed:
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		// Price feed failure: the card can't be evaluated right now.
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, scan)
}

func (h *handlers) closeSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.desk.CloseSession(mux.Vars(r)["id"])
	switch {
	case err == desk.ErrSessionNotFound:
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err == desk.ErrSessionClosed:
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *handlers) resolveScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Accepted   bool    `json:"accepted"`
		FinalPrice float64 `json:"final_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid resolve payload: "+err.Error())
		return
	}
	if req.Accepted && req.FinalPrice < 0 {
		writeError(w, http.StatusBadRequest, "final_price must be non-negative")
		return
	}

	err := h.desk.ResolveReview(mux.Vars(r)["id"], req.Accepted, req.FinalPrice)
	switch {
	case err == desk.ErrNotReviewable:
		writeError(w, http.StatusConflict, err.Error())
		return
	case err == recorder.ErrNotFound:
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (h *handlers) listContacts(w http.ResponseWriter, _ *http.Request) {
	contacts, err := h.recorder.ListContacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *handlers) createContact(w http.ResponseWriter, r *http.Request) {
	var c model.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact payload: "+err.Error())
		return
	}
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := h.recorder.SaveContact(&c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handlers) getContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.recorder.GetContact(mux.Vars(r)["id"])
	if err == recorder.ErrNotFound {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}
