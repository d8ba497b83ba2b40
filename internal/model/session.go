package model

// SessionData is the whole per-visitor wizard state. The external store holds
// it as a single JSON document; every save round-trips the full struct.
type SessionData struct {
	SignInInfo         SignInInfo       `json:"signin_info"`
	ExtensionSession   ExtensionSession `json:"extension_session"`
	PageHistory        PageHistory      `json:"page_history"`
	NavigationBackFlag bool             `json:"navigation_back_flag"`
	ChangingDetails    bool             `json:"changing_details"`
	Submitted          bool             `json:"submitted"`
}

type SignInInfo struct {
	SignedIn    bool        `json:"signed_in"`
	AccessToken string      `json:"access_token"`
	UserProfile UserProfile `json:"user_profile"`
}

type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ExtensionSession struct {
	CompanyInContext  string             `json:"company_in_context"`
	ExtensionRequests []ExtensionRequest `json:"extension_requests"`
}

// ExtensionRequest ties a company number to the id the downstream API issued
// for its extension request. ReasonInContext points at the reason currently
// being edited; a stale pointer surfaces as "not found" downstream.
type ExtensionRequest struct {
	CompanyNumber      string  `json:"company_number"`
	ExtensionRequestID string  `json:"extension_request_id"`
	ReasonInContext    *string `json:"reason_in_context,omitempty"`
}

// PageHistory is the breadcrumb stack, oldest entry first. Paths are relative
// with the template suffix stripped.
type PageHistory struct {
	PageHistory []string `json:"page_history"`
}

// Session pairs the typed state with its identity: the opaque cookie id the
// browser carries and the derived key the store is addressed by.
type Session struct {
	CookieID   string
	SessionKey string
	IsNew      bool
	Data       *SessionData
}

func NewSessionData() *SessionData {
	return &SessionData{
		ExtensionSession: ExtensionSession{
			ExtensionRequests: make([]ExtensionRequest, 0),
		},
		PageHistory: PageHistory{
			PageHistory: make([]string, 0),
		},
	}
}
