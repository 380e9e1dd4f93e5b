package service

import "strconv"

func publicationSubject(id uint64) string {
	return "publicacion:" + strconv.FormatUint(id, 10)
}

func commentSubject(id uint64) string {
	return "comentario:" + strconv.FormatUint(id, 10)
}

func contactSubject(id uint64) string {
	return "contacto:" + strconv.FormatUint(id, 10)
}
