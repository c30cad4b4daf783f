// Package folder derives a product table from a folder of product images.
//
// Every image named "<code>_<name>_<category>_<brand>_<price>_<stock>.<ext>"
// contributes one record. The name may itself contain underscores. Images
// whose name does not start with a product code are skipped and reported;
// they are the input of the assign-codes command.
package folder
