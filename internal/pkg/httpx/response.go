// Package httpx padroniza as respostas JSON da API.
package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// maxBodyBytes limita o tamanho dos payloads aceitos.
const maxBodyBytes = 1 << 20

// Respond envia data com successStatus, ou o erro mapeado para o status HTTP.
func Respond(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}

	if data == nil {
		w.WriteHeader(successStatus)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatus)
	if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
		log.Error("Falha ao codificar JSON de resposta", jsonErr)
	}
}

// Error traduz o erro para {code, category, message}.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Decode lê o corpo JSON em v. Corpo vazio ou malformado é ValidationError.
func Decode(r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if err == io.EOF {
			return apperror.NewValidationError("O corpo da requisição está vazio.")
		}
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}
