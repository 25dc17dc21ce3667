package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID    int     `gorm:"primaryKey" json:"userId"`
	Username  string  `gorm:"not null;type:varchar(50)" json:"username"`
	Email     string  `gorm:"unique;not null;type:varchar(100)" json:"email"`
	Password  string  `gorm:"not null;type:varchar(100)" json:"-"` // bcrypt hash
	Role      string  `gorm:"not null;type:varchar(20);default:user" json:"role"`
	Orders    []Order `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // 一對多，級聯刪除
	BaseModel
}
