package service

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/riverrun/cidrd/ipv4"

	"github.com/go-chi/chi"
)

// lookupResult is the per-IP shape used by both single and batch
// lookup responses.
type lookupResult struct {
	IP    string   `json:"ip" yaml:"ip"`
	Valid bool     `json:"valid" yaml:"valid"`
	Cidrs []string `json:"cidrs" yaml:"cidrs"`
}

// mutationResult is the shape returned by verify, add and delete.
type mutationResult struct {
	Cidr    string `json:"cidr" yaml:"cidr"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Present bool   `json:"present" yaml:"present"`
}

type statusResult struct {
	Status string `json:"status" yaml:"status"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	f, err := negotiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeBody(w, http.StatusOK, f, opStatus, statusResult{Status: "OK"})
}

func (s *Server) handleSingleLookup(w http.ResponseWriter, r *http.Request) {
	f, err := negotiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ipStr := chi.URLParam(r, "ip")
	addr, err := ipv4.Parse(ipStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result := s.lookupOne(addr, ipStr)
	writeBody(w, http.StatusOK, f, opSingleLookup, []lookupResult{result})
}

func (s *Server) handleBatchLookup(w http.ResponseWriter, r *http.Request) {
	f, err := negotiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	lines := strings.FieldsFunc(string(body), func(c rune) bool { return c == '\r' || c == '\n' })
	results := make([]lookupResult, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		decoded, err := url.QueryUnescape(line)
		if err != nil {
			decoded = line
		}
		addr, err := ipv4.Parse(decoded)
		if err != nil {
			results = append(results, lookupResult{IP: decoded, Valid: false, Cidrs: []string{}})
			continue
		}
		results = append(results, s.lookupOne(addr, decoded))
	}
	writeBody(w, http.StatusOK, f, opBatchLookup, results)
}

func (s *Server) lookupOne(addr ipv4.Address, ipStr string) lookupResult {
	s.mu.RLock()
	matches := s.idx.Lookup(addr)
	s.mu.RUnlock()
	cidrs := make([]string, len(matches))
	for i, c := range matches {
		cidrs[i] = c.String()
	}
	return lookupResult{IP: ipStr, Valid: true, Cidrs: cidrs}
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	f, err := negotiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.parseCidrParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	present := s.idx.Has(c)
	s.mu.RUnlock()
	writeBody(w, http.StatusOK, f, opVerify, mutationResult{Cidr: c.String(), Valid: true, Present: present})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	f, err := negotiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.parseCidrParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.idx.Put(c)
	commitErr := s.commit()
	present := s.idx.Has(c)
	s.mu.Unlock()
	if commitErr != nil {
		s.logger.ErrorContext(r.Context(), "commit failed: "+commitErr.Error())
		writeError(w, http.StatusInternalServerError, commitErr.Error())
		return
	}
	writeBody(w, http.StatusOK, f, opAdd, mutationResult{Cidr: c.String(), Valid: true, Present: present})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	f, err := negotiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.parseCidrParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.idx.Del(c)
	commitErr := s.commit()
	present := s.idx.Has(c)
	s.mu.Unlock()
	if commitErr != nil {
		s.logger.ErrorContext(r.Context(), "commit failed: "+commitErr.Error())
		writeError(w, http.StatusInternalServerError, commitErr.Error())
		return
	}
	writeBody(w, http.StatusOK, f, opDelete, mutationResult{Cidr: c.String(), Valid: true, Present: present})
}

func (s *Server) parseCidrParam(r *http.Request) (ipv4.Cidr, error) {
	ipStr := chi.URLParam(r, "ip")
	pStr := chi.URLParam(r, "p")
	return ipv4.ParseCidr(ipStr + "/" + pStr)
}
