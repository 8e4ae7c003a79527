package auth

import "github.com/stockfacil/kiosco-pos/internal/domain/entity"

// Mirror replica el evento de ingreso hacia el espejo compartido.
type Mirror interface {
	MirrorLoginEvent(ev *entity.LoginEvent)
}
