// Package scaffold creates new DevLama projects. A project is a directory
// named after the project holding exactly three files: package.json,
// README.md, and index.js. Projects are assembled in a hidden staging
// directory and renamed into place, so an existing directory is never
// modified and a failed run leaves nothing behind.
package scaffold
