package dto

// RepositoryForm holds the multipart fields of POST /repositorio.
type RepositoryForm struct {
	Titulo              string `form:"titulo"`
	TipoDocumento       string `form:"tipo_documento"`
	Descripcion         string `form:"descripcion"`
	PuntosClave         string `form:"puntos_clave"`
	FechaPublicacion    string `form:"fecha_publicacion"`
	FuenteOrigen        string `form:"fuente_origen"`
	TipoFuente          string `form:"tipo_fuente"`
	EnlaceExterno       string `form:"enlace_externo"`
	EstadoProcesamiento string `form:"estado_procesamiento"`
	Etiquetas           string `form:"etiquetas"`
}
