package models

// User — текущий пользователь, как его отдаёт GET /auth/me.
// ActiveFeatures — имена активных подписочных фич; по ним работает
// локальная часть feature-гейта.
type User struct {
	ID               int64    `json:"id"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	Name             string   `json:"name,omitempty"`
	Age              int      `json:"age,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	AvatarURL        string   `json:"avatar_url,omitempty"`
	ProfileCompleted bool     `json:"profile_completed"`
	ActiveFeatures   []string `json:"active_features"`
}

// HasFeature — линейный поиск; списки фич короткие (единицы имён).
func (u *User) HasFeature(name string) bool {
	if u == nil {
		return false
	}

	for _, f := range u.ActiveFeatures {
		if f == name {
			return true
		}
	}

	return false
}

// Merge — shallow-merge частичного обновления в снапшот пользователя:
// непустые поля перезаписывают, отсутствующие сохраняются.
// Семантика merge-patch: аутентификационные атрибуты (ID, Email, Role)
// этим путём не меняются.
func (u *User) Merge(patch UserPatch) {
	if u == nil {
		return
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Age != nil {
		u.Age = *patch.Age
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		u.AvatarURL = *patch.AvatarURL
	}
	if patch.ProfileCompleted != nil {
		u.ProfileCompleted = *patch.ProfileCompleted
	}
	if patch.ActiveFeatures != nil {
		u.ActiveFeatures = patch.ActiveFeatures
	}
}

// UserPatch — частичное обновление профиля (nil — поле не трогаем).
type UserPatch struct {
	Name             *string  `json:"name,omitempty"`
	Age              *int     `json:"age,omitempty"`
	Bio              *string  `json:"bio,omitempty"`
	AvatarURL        *string  `json:"avatar_url,omitempty"`
	ProfileCompleted *bool    `json:"profile_completed,omitempty"`
	ActiveFeatures   []string `json:"active_features,omitempty"`
}

// Clone — копия снапшота, чтобы читатели не делили срезы с менеджером сессии.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	cp := *u
	cp.ActiveFeatures = append([]string(nil), u.ActiveFeatures...)

	return &cp
}
