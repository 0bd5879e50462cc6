package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

func TestParseUsers_NormalizaRolYRUT(t *testing.T) {
	in := "rut,username,nombre,apellido,rol,password,departamento\n" +
		"12.345.670-k,,Ana,Pérez,Jefe de Sección,secreto,Sólidos\n" +
		"9.876.543-3,qf1,Luis,Soto,Químico Farmacéutico,otra\n"

	users, err := parseUsers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "12345670-K", users[0].user.RUT)
	assert.Equal(t, "12345670-K", users[0].user.Username)
	assert.Equal(t, entity.RoleSectionChief, users[0].user.Profile.Role)
	assert.Equal(t, "Sólidos", users[0].user.Profile.Department)
	assert.Equal(t, entity.RolePharmaceuticChemist, users[1].user.Profile.Role)
	assert.Equal(t, "otra", users[1].password)
}

func TestParseUsers_RolDesconocido(t *testing.T) {
	in := "rut,username,nombre,apellido,rol,password\n1-9,u,A,B,Bodeguero,x\n"
	_, err := parseUsers(strings.NewReader(in))
	assert.ErrorContains(t, err, "rol desconocido")
}

func TestParseUsers_DigitoVerificadorInvalido(t *testing.T) {
	in := "rut,username,nombre,apellido,rol,password\n12.345.678-K,u,A,B,Jefe de Producción,x\n"
	_, err := parseUsers(strings.NewReader(in))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "dígito verificador")
}

func TestParseUsers_ColumnasFaltantes(t *testing.T) {
	in := "rut,username,nombre,apellido,rol,password\n1-9,u,A\n"
	_, err := parseUsers(strings.NewReader(in))
	assert.Error(t, err)
}

func TestParseUsers_Latin1(t *testing.T) {
	utf8 := "rut,username,nombre,apellido,rol,password\n1-9,u,José,Núñez,Inspector de Calidad,x\n"
	raw, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	users, err := parseUsers(transform.NewReader(bytes.NewReader([]byte(raw)), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Núñez", users[0].user.LastName)
	assert.Equal(t, entity.RoleQualityInspector, users[0].user.Profile.Role)
}
