// Package docs swag tarafından üretilir. Elle düzenlemeyin.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/activities": {
            "get": {
                "summary": "Son etkinlikler",
                "tags": [
                    "activities"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "En fazla 100",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/applications": {
            "get": {
                "summary": "Başvurular",
                "tags": [
                    "applications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "job_id",
                        "in": "query",
                        "required": false,
                        "description": "İlan",
                        "type": "string"
                    },
                    {
                        "name": "stage",
                        "in": "query",
                        "required": false,
                        "description": "new | screening | interview | offer | hired | rejected | withdrawn",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/applications/{id}": {
            "get": {
                "summary": "Başvuru detayı",
                "tags": [
                    "applications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Başvuru ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Başvuru aşaması ve notları",
                "tags": [
                    "applications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Başvuru ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "aşama, notlar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Başvuru sil",
                "tags": [
                    "applications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Başvuru ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/applications/{id}/cv-url": {
            "get": {
                "summary": "CV indirme adresi",
                "tags": [
                    "applications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Başvuru ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/applications/{id}/evaluate": {
            "post": {
                "summary": "Adayı yapay zekâ ile değerlendir",
                "tags": [
                    "applications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Başvuru ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Hata"
                    },
                    "500": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/audit-logs": {
            "get": {
                "summary": "Denetim kayıtları",
                "tags": [
                    "audit"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "entity_type",
                        "in": "query",
                        "required": false,
                        "description": "Varlık türü",
                        "type": "string"
                    },
                    {
                        "name": "entity_id",
                        "in": "query",
                        "required": false,
                        "description": "Varlık ID",
                        "type": "string"
                    },
                    {
                        "name": "user_id",
                        "in": "query",
                        "required": false,
                        "description": "Kullanıcı",
                        "type": "string"
                    },
                    {
                        "name": "action",
                        "in": "query",
                        "required": false,
                        "description": "create | update | delete | login ...",
                        "type": "string"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "required": false,
                        "description": "YYYY-AA-GG",
                        "type": "string"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "required": false,
                        "description": "YYYY-AA-GG (dahil)",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "summary": "Giriş",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "email, password",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Hata"
                    },
                    "403": {
                        "description": "Hata"
                    },
                    "429": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "summary": "Çıkış",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "summary": "Oturumdaki kullanıcı",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/auth/password": {
            "put": {
                "summary": "Parola değiştir",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "mevcut ve yeni parola",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "401": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "summary": "Kullanıcı kaydı",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "email, password, name, company_id",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/companies": {
            "post": {
                "summary": "Şirket oluştur",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "ad, VKN, vergi dairesi",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            },
            "get": {
                "summary": "Şirketleri listele",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Sayfa boyutu",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Başlangıç",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/companies/{id}": {
            "get": {
                "summary": "Şirket detayı",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Şirket ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Şirket güncelle",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Şirket ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "değişen alanlar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Şirket sil",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Şirket ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/companies/{id}/modules": {
            "get": {
                "summary": "Şirket modülleri",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Şirket ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "summary": "Modül aç/kapat",
                "tags": [
                    "companies"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Şirket ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "modül adı, durum, bitiş",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/dashboard/summary": {
            "get": {
                "summary": "Gösterge paneli özeti",
                "tags": [
                    "dashboard"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/departments": {
            "get": {
                "summary": "Departmanları listele",
                "tags": [
                    "departments"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Sayfa boyutu",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Başlangıç",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Departman oluştur",
                "tags": [
                    "departments"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "ad, üst departman, yönetici",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/departments/{id}": {
            "get": {
                "summary": "Departman detayı",
                "tags": [
                    "departments"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Departman ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Departman güncelle",
                "tags": [
                    "departments"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Departman ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "departman",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Departman sil",
                "tags": [
                    "departments"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Departman ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/employees": {
            "get": {
                "summary": "Personel listesi",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "department_id",
                        "in": "query",
                        "required": false,
                        "description": "Departman",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "active | on_leave | terminated",
                        "type": "string"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Ad, e-posta ya da sicil no",
                        "type": "string"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Sayfa boyutu",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Başlangıç",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Personel oluştur",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "personel",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/employees/import": {
            "post": {
                "summary": "CSV ile personel içe aktar",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/mpfd"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "formData",
                        "required": false,
                        "description": "CSV dosyası",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/employees/me": {
            "get": {
                "summary": "Kendi personel kaydım",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/employees/{id}": {
            "get": {
                "summary": "Personel detayı",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Personel güncelle",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "personel",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Personel sil",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/employees/{id}/terminate": {
            "post": {
                "summary": "İşten çıkış",
                "tags": [
                    "employees"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "çıkış tarihi ve nedeni",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/jobs": {
            "get": {
                "summary": "İş ilanları",
                "tags": [
                    "jobs"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "draft | open | closed",
                        "type": "string"
                    },
                    {
                        "name": "department_id",
                        "in": "query",
                        "required": false,
                        "description": "Departman",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "İlan oluştur",
                "tags": [
                    "jobs"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "ilan",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/jobs/{id}": {
            "get": {
                "summary": "İlan detayı",
                "tags": [
                    "jobs"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İlan ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "İlan güncelle",
                "tags": [
                    "jobs"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İlan ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "ilan",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "İlan sil",
                "tags": [
                    "jobs"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İlan ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/leaves": {
            "get": {
                "summary": "İzin talepleri",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employee_id",
                        "in": "query",
                        "required": false,
                        "description": "Personel",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "pending | approved | rejected | cancelled",
                        "type": "string"
                    },
                    {
                        "name": "type",
                        "in": "query",
                        "required": false,
                        "description": "İzin türü",
                        "type": "string"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "required": false,
                        "description": "YYYY-AA-GG",
                        "type": "string"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "required": false,
                        "description": "YYYY-AA-GG",
                        "type": "string"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Sayfa boyutu",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Başlangıç",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "İzin talebi oluştur",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "tür, başlangıç, bitiş, açıklama",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/leaves/balance/{employeeId}": {
            "get": {
                "summary": "Yıllık izin bakiyesi",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employeeId",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": false,
                        "description": "Yıl (varsayılan: bu yıl)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/leaves/{id}": {
            "get": {
                "summary": "İzin detayı",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İzin ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Bekleyen izin talebini güncelle",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İzin ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "değişen alanlar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "İzin sil",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İzin ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/leaves/{id}/approve": {
            "post": {
                "summary": "İzni onayla",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İzin ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/leaves/{id}/cancel": {
            "post": {
                "summary": "İzni iptal et",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İzin ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/leaves/{id}/reject": {
            "post": {
                "summary": "İzni reddet",
                "tags": [
                    "leaves"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İzin ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "ret nedeni",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/notifications": {
            "get": {
                "summary": "Bildirimlerim",
                "tags": [
                    "notifications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "unread",
                        "in": "query",
                        "required": false,
                        "description": "Yalnızca okunmamışlar",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications/read-all": {
            "put": {
                "summary": "Tümünü okundu işaretle",
                "tags": [
                    "notifications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications/unread-count": {
            "get": {
                "summary": "Okunmamış bildirim sayısı",
                "tags": [
                    "notifications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications/{id}": {
            "delete": {
                "summary": "Bildirim sil",
                "tags": [
                    "notifications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bildirim ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications/{id}/read": {
            "put": {
                "summary": "Okundu işaretle",
                "tags": [
                    "notifications"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bildirim ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll": {
            "get": {
                "summary": "Bordrolar",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employee_id",
                        "in": "query",
                        "required": false,
                        "description": "Personel",
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": false,
                        "description": "Yıl",
                        "type": "integer"
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": false,
                        "description": "Ay (1-12)",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "draft | approved | paid",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Bordro oluştur",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "personel, dönem, kalemler",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll/export.xml": {
            "get": {
                "summary": "Dönem bordro XML dışa aktarımı",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/xml"
                ],
                "parameters": [
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "description": "Yıl",
                        "type": "integer"
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": true,
                        "description": "Ay (1-12)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll/export.zip": {
            "get": {
                "summary": "Dönem bordro PDF arşivi (ZIP)",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/zip"
                ],
                "parameters": [
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "description": "Yıl",
                        "type": "integer"
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": true,
                        "description": "Ay (1-12)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll/generate": {
            "post": {
                "summary": "Dönem bordrolarını toplu oluştur",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "yıl, ay",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/payroll/{id}": {
            "get": {
                "summary": "Bordro detayı",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bordro ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Taslak bordroyu güncelle",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bordro ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "kalemler",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Taslak bordroyu sil",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bordro ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll/{id}/approve": {
            "post": {
                "summary": "Bordroyu onayla",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bordro ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll/{id}/pay": {
            "post": {
                "summary": "Bordroyu ödendi işaretle",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bordro ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/payroll/{id}/payslip.pdf": {
            "get": {
                "summary": "Bordro PDF",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Bordro ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/performance": {
            "get": {
                "summary": "Değerlendirmeler",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employee_id",
                        "in": "query",
                        "required": false,
                        "description": "Personel",
                        "type": "string"
                    },
                    {
                        "name": "reviewer_id",
                        "in": "query",
                        "required": false,
                        "description": "Değerlendiren",
                        "type": "string"
                    },
                    {
                        "name": "period",
                        "in": "query",
                        "required": false,
                        "description": "2025-Q1, 2025-H1 ya da 2025",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "draft | submitted | acknowledged",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Değerlendirme oluştur",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "değerlendirme",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/performance/summary/{employeeId}": {
            "get": {
                "summary": "Dönem bazında ortalama puan",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employeeId",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/performance/{id}": {
            "get": {
                "summary": "Değerlendirme detayı",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Değerlendirme ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Taslak değerlendirmeyi güncelle",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Değerlendirme ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "değerlendirme",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Değerlendirme sil",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Değerlendirme ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/performance/{id}/acknowledge": {
            "post": {
                "summary": "Değerlendirmeyi onayla (personel)",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Değerlendirme ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/performance/{id}/submit": {
            "post": {
                "summary": "Değerlendirmeyi gönder",
                "tags": [
                    "performance"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Değerlendirme ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/public/companies/{companyId}/jobs": {
            "get": {
                "summary": "Şirketin açık ilanları (herkese açık)",
                "tags": [
                    "public"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "companyId",
                        "in": "path",
                        "required": true,
                        "description": "Şirket ID",
                        "type": "string"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Sayfa boyutu",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Başlangıç",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/public/jobs/{id}": {
            "get": {
                "summary": "Açık ilan detayı (herkese açık)",
                "tags": [
                    "public"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İlan ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/public/jobs/{id}/apply": {
            "post": {
                "summary": "İlana başvur (herkese açık)",
                "tags": [
                    "public"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İlan ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "aday bilgileri",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "404": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/public/jobs/{id}/cv-upload-url": {
            "post": {
                "summary": "CV yükleme adresi (herkese açık)",
                "tags": [
                    "public"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "İlan ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "dosya adı ve türü",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/settings": {
            "get": {
                "summary": "Ayarlar",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "category",
                        "in": "query",
                        "required": false,
                        "description": "payroll | leave | general",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/settings/{key}": {
            "get": {
                "summary": "Ayar",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "key",
                        "in": "path",
                        "required": true,
                        "description": "Anahtar (ör. payroll.minimum_wage)",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Ayar yaz",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "key",
                        "in": "path",
                        "required": true,
                        "description": "Anahtar",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "değer, kategori, açıklama",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Ayarı varsayılana döndür",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "key",
                        "in": "path",
                        "required": true,
                        "description": "Anahtar",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/trainings": {
            "get": {
                "summary": "Eğitimler",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "planned | ongoing | completed | cancelled",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Eğitim oluştur",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "eğitim",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/trainings/{id}": {
            "get": {
                "summary": "Eğitim detayı",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Eğitim güncelle",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "eğitim",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Eğitim sil",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/trainings/{id}/participants": {
            "get": {
                "summary": "Katılımcılar",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Katılımcı ekle",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "personel",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/trainings/{id}/participants/{employeeId}": {
            "put": {
                "summary": "Katılımcı tamamlama durumu",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    },
                    {
                        "name": "employeeId",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "tamamlandı",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "delete": {
                "summary": "Katılımcı çıkar",
                "tags": [
                    "trainings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Eğitim ID",
                        "type": "string"
                    },
                    {
                        "name": "employeeId",
                        "in": "path",
                        "required": true,
                        "description": "Personel ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/users": {
            "get": {
                "summary": "Kullanıcıları listele",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Sayfa boyutu",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Başlangıç",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Kullanıcı oluştur",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "kullanıcı",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "summary": "Kullanıcı detayı",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Kullanıcı ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "put": {
                "summary": "Kullanıcı güncelle (rol, durum, ad)",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Kullanıcı ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "değişen alanlar",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Hata"
                    },
                    "404": {
                        "description": "Hata"
                    }
                }
            },
            "delete": {
                "summary": "Kullanıcı sil",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Kullanıcı ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Hata"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "host": "{{.Host}}",
    "schemes": {{ marshal .Schemes }}
}`

// SwaggerInfo dışarıdan değiştirilebilen API bilgisi.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "İK Portal API",
	Description:      "Çok kiracılı insan kaynakları API'si.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
