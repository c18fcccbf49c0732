package flows

// Deps groups flow dependency sets. The root client builds this once and
// delegates operations to the matching flow implementation.
type Deps struct {
	Login    LoginDeps
	Register RegisterDeps
	Logout   LogoutDeps
	Profile  ProfileDeps
}
