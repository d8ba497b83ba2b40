package dto

// Div is one rendered fragment region for the AJAX upload protocol.
type Div struct {
	DivID   string `json:"divId"`
	DivHTML string `json:"divHtml"`
}

// FragmentResponse is the JSON body for fragment success and validation
// responses: {"divs":[{"divId":...,"divHtml":...}]}.
type FragmentResponse struct {
	Divs []Div `json:"divs"`
}

// FragmentRedirect degrades a failed fragment render to a client-side
// redirect, served with a 500.
type FragmentRedirect struct {
	Redirect string `json:"redirect"`
}

// UploadErrorData feeds the upload page / error-summary partial on
// validation failures.
type UploadErrorData struct {
	ErrorMessage string
}
