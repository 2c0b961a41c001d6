package patch

import "fmt"

// PlanItemFields is every plan column a client may change. id, created_by and
// created_at are deliberately absent; has_file_uploaded is owned by uploads.
var PlanItemFields = NewSet(
	Field{Key: "activity_code", Kind: NullableString},
	Field{Key: "product_code", Kind: NullableString},
	Field{Key: "task_name", Kind: NullableString},
	Field{Key: "week_start", Kind: Int},
	Field{Key: "week_end", Kind: Int},
	Field{Key: "type_tag", Kind: NullableString},
	Field{Key: "dependency_code", Kind: NullableString},
	Field{Key: "evidence_requirement", Kind: NullableString},
	Field{Key: "primary_role", Kind: NullableString},
	Field{Key: "co_responsibles", Kind: NullableString},
	Field{Key: "primary_responsible", Kind: NullableString},
	Field{Key: "status", Kind: String},
	Field{Key: "fecha_inicio", Kind: Date},
	Field{Key: "fecha_fin", Kind: Date},
)

// MilestoneFields are the editable milestone columns.
var MilestoneFields = NewSet(
	Field{Key: "nombre", Kind: String},
	Field{Key: "fecha_estimada", Kind: Date},
	Field{Key: "descripcion", Kind: NullableString},
	Field{Key: "estado", Kind: String},
)

// RepositoryFields covers the metadata of a repository document. The stored
// file itself cannot be replaced through an update.
var RepositoryFields = NewSet(
	Field{Key: "titulo", Kind: String},
	Field{Key: "tipo_documento", Kind: NullableString},
	Field{Key: "descripcion", Kind: NullableString},
	Field{Key: "puntos_clave", Kind: NullableString},
	Field{Key: "fuente_origen", Kind: NullableString},
	Field{Key: "tipo_fuente", Kind: NullableString},
	Field{Key: "fecha_publicacion", Kind: Date},
	Field{Key: "enlace_externo", Kind: NullableString},
	Field{Key: "etiquetas", Kind: NullableString},
	Field{Key: "estado_procesamiento", Kind: String},
)

// UserFields returns the user allow-list. A non-empty password is hashed
// with hash and stored in password_hash; an empty one is ignored.
func UserFields(hash func(string) (string, error)) *Set {
	return NewSet(
		Field{Key: "nombre", Kind: String},
		Field{Key: "username", Kind: String},
		Field{Key: "password", Column: "password_hash", Convert: func(raw interface{}) (interface{}, bool, error) {
			pw, ok := raw.(string)
			if raw == nil || (ok && pw == "") {
				return nil, false, nil
			}
			if !ok {
				return nil, false, fmt.Errorf("se esperaba texto")
			}
			hashed, err := hash(pw)
			if err != nil {
				return nil, false, err
			}
			return hashed, true, nil
		}},
	)
}
