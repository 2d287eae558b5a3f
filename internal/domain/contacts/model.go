package contacts

// Contact es a quién llamar si alguien encuentra a la mascota.
// Se listan por Priority asc y luego por ID asc.
type Contact struct {
	ID       int64
	PetID    string
	Label    string // "Dueño", "Vecina", ...
	Name     string
	Phone    string
	WhatsApp string
	Priority int
}
