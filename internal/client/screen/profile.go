package screen

type ProfileState struct {
	User      string
	Favorites int
	History   []string
}

// ProfileView summarizes the guest identity. It reads the shared stores
// directly and never fetches.
type ProfileView struct {
	favs    Favorites
	history History
}

func NewProfileView(favs Favorites, history History) *ProfileView {
	return &ProfileView{favs: favs, history: history}
}

func (v *ProfileView) State() ProfileState {
	return ProfileState{
		User:      v.favs.User(),
		Favorites: v.favs.Len(),
		History:   v.history.Entries(),
	}
}
