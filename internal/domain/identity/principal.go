package identity

// Principal is the resolved session identity injected into request context.
// Components receive it explicitly; nothing reads ambient globals.
type Principal struct {
	UserID      string
	Username    string
	DisplayName string
}
