package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
